package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/mmdatafocus/schedule3_backend/utils"
	"gorm.io/gorm"
)

type Company struct {
	ID        string    `gorm:"primary_key;size:36" json:"id"`
	Name      string    `gorm:"index;size:255;not null" json:"name"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// EntityConfig holds the statutory particulars and presentation preferences of a company.
type EntityConfig struct {
	ID              int             `gorm:"primary_key" json:"id"`
	CompanyId       string          `gorm:"uniqueIndex;size:36;not null" json:"company_id"`
	Name            string          `gorm:"size:255" json:"name"`
	Address         string          `gorm:"type:text" json:"address"`
	CIN             string          `gorm:"column:cin;size:21" json:"cin"`
	Phone           string          `gorm:"size:20" json:"phone"`
	FyStart         *time.Time      `json:"fy_start"`
	FyEnd           *time.Time      `json:"fy_end"`
	Currency        string          `gorm:"size:3;default:INR;not null" json:"currency"`
	Units           ReportingUnit   `gorm:"size:20;default:absolute;not null" json:"units"`
	NegativeDisplay NegativeDisplay `gorm:"size:20;default:minus;not null" json:"negative_display"`
	FontFamily      string          `gorm:"size:100" json:"font_family"`
	FontSize        int             `gorm:"default:10" json:"font_size"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewEntityConfig struct {
	Name            string          `json:"name" validate:"required,max=255"`
	Address         string          `json:"address" validate:"required"`
	CIN             string          `json:"cin" validate:"cin"`
	Phone           string          `json:"phone" validate:"phone"`
	FyStart         *time.Time      `json:"fy_start" validate:"required"`
	FyEnd           *time.Time      `json:"fy_end" validate:"required,gtfield=FyStart"`
	Currency        string          `json:"currency" validate:"required,len=3"`
	Units           ReportingUnit   `json:"units" validate:"required,oneof=absolute thousands lakhs millions crores"`
	NegativeDisplay NegativeDisplay `json:"negative_display" validate:"required,oneof=minus brackets"`
	FontFamily      string          `json:"font_family" validate:"max=100"`
	FontSize        int             `json:"font_size" validate:"omitempty,min=6,max=24"`
}

func GetCompanyById(ctx context.Context, id string) (*Company, error) {
	var result Company
	db := config.GetDB()
	err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

// GetEntityConfig returns the entity configuration of a company.
// A company without a saved configuration yields an empty config, not an error.
func GetEntityConfig(ctx context.Context, companyId string) (*EntityConfig, error) {
	if _, err := GetCompanyById(ctx, companyId); err != nil {
		return nil, err
	}

	var result EntityConfig
	db := config.GetDB()
	err := db.WithContext(ctx).Where("company_id = ?", companyId).Take(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &EntityConfig{CompanyId: companyId}, nil
		}
		return nil, err
	}
	return &result, nil
}

func UpdateEntityConfig(ctx context.Context, companyId string, input *NewEntityConfig) (*EntityConfig, error) {
	if err := utils.ValidateInput(input); err != nil {
		return nil, err
	}

	existing, err := GetEntityConfig(ctx, companyId)
	if err != nil {
		return nil, err
	}

	cfg := EntityConfig{
		ID:              existing.ID,
		CompanyId:       companyId,
		Name:            strings.TrimSpace(input.Name),
		Address:         strings.TrimSpace(input.Address),
		CIN:             strings.ToUpper(strings.TrimSpace(input.CIN)),
		Phone:           strings.TrimSpace(input.Phone),
		FyStart:         input.FyStart,
		FyEnd:           input.FyEnd,
		Currency:        strings.ToUpper(input.Currency),
		Units:           input.Units,
		NegativeDisplay: input.NegativeDisplay,
		FontFamily:      input.FontFamily,
		FontSize:        input.FontSize,
		CreatedAt:       existing.CreatedAt,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func CreateCompany(ctx context.Context, id string, name string) (*Company, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(name) == "" {
		return nil, errors.New("company id and name are required")
	}
	company := Company{ID: id, Name: name, IsActive: utils.NewTrue()}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}
