package models

type Identifier interface {
	GetId() int
}

// interface for dataloader result
type Data interface {
	Identifier
	GetDefault(int) Data
}

func (h MajorHead) GetId() int {
	return h.ID
}

// GetDefault stands in for a head id that is no longer in the master list.
func (h MajorHead) GetDefault(id int) Data {
	return MajorHead{ID: id, Name: "Unclassified"}
}

func (g Grouping) GetId() int {
	return g.ID
}

func (g Grouping) GetDefault(id int) Data {
	return Grouping{ID: id, Name: "Ungrouped"}
}
