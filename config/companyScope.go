package config

import (
	"strings"

	"github.com/mmdatafocus/schedule3_backend/appctx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const companyColumn = "company_id"

// CompanyScopePlugin adds "company_id = ?" to model queries, updates and deletes
// when the context carries a company and the model has the column. Raw SQL is left alone.
type CompanyScopePlugin struct{}

func NewCompanyScopePlugin() *CompanyScopePlugin { return &CompanyScopePlugin{} }

func (p *CompanyScopePlugin) Name() string { return "company_scope" }

func (p *CompanyScopePlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	for name, register := range map[string]func(string, func(*gorm.DB)) error{
		"query":  cb.Query().Before("gorm:query").Register,
		"row":    cb.Row().Before("gorm:row").Register,
		"update": cb.Update().Before("gorm:update").Register,
		"delete": cb.Delete().Before("gorm:delete").Register,
	} {
		if err := register("company_scope:"+name, scopeToCompany); err != nil {
			return err
		}
	}
	return nil
}

func scopeToCompany(db *gorm.DB) {
	stmt := db.Statement
	if stmt == nil || stmt.Context == nil || stmt.Schema == nil {
		return
	}
	if skip, _ := appctx.GetBool(stmt.Context, appctx.ContextKeySkipCompanyScope); skip {
		return
	}
	companyId, _ := appctx.GetString(stmt.Context, appctx.ContextKeyCompanyId)
	if companyId == "" {
		return
	}
	if _, ok := stmt.Schema.FieldsByDBName[companyColumn]; !ok {
		return
	}
	if where, ok := stmt.Clauses["WHERE"].Expression.(clause.Where); ok && filtersCompany(where.Exprs...) {
		return
	}
	stmt.AddClause(clause.Where{Exprs: []clause.Expression{
		clause.Eq{Column: clause.Column{Table: stmt.Table, Name: companyColumn}, Value: companyId},
	}})
}

// filtersCompany reports whether the caller already constrained company_id.
func filtersCompany(exprs ...clause.Expression) bool {
	for _, e := range exprs {
		var hit bool
		switch v := e.(type) {
		case clause.Eq:
			hit = isCompanyColumn(v.Column)
		case clause.IN:
			hit = isCompanyColumn(v.Column)
		case clause.AndConditions:
			hit = filtersCompany(v.Exprs...)
		case clause.Expr:
			hit = strings.Contains(strings.ToLower(v.SQL), companyColumn)
		}
		if hit {
			return true
		}
	}
	return false
}

func isCompanyColumn(col any) bool {
	switch c := col.(type) {
	case string:
		return strings.EqualFold(c, companyColumn)
	case clause.Column:
		return strings.EqualFold(c.Name, companyColumn)
	}
	return false
}
