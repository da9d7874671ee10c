package model

// ClassificationLevel identifies the depth of a code in the tariff hierarchy.
type ClassificationLevel string

const (
	LevelSection         ClassificationLevel = "SECTION"
	LevelChapter         ClassificationLevel = "CHAPTER"
	LevelHeading         ClassificationLevel = "HEADING"
	LevelSubheading      ClassificationLevel = "SUBHEADING"
	LevelStatisticalLine ClassificationLevel = "STATISTICAL_LINE"
)

// ClassificationCode represents one entry of the hierarchical tariff
// classification (section, chapter, heading, subheading, statistical line).
// The tree is maintained by the data loader and is read-only to the
// calculation engine.
type ClassificationCode struct {
	BaseModel
	Code        string              `gorm:"type:varchar(20);column:code;not null;unique" json:"code"`
	Description string              `gorm:"type:text;column:description" json:"description"`
	Level       ClassificationLevel `gorm:"type:varchar(20);column:level;not null" json:"level"`
	ParentCode  *string             `gorm:"type:varchar(20);column:parent_code;index" json:"parentCode,omitempty"`
	UnitOfQty   string              `gorm:"type:varchar(20);column:unit_of_qty" json:"unitOfQty,omitempty"`
	Active      bool                `gorm:"column:active;not null;default:true" json:"active"`
}

func (c *ClassificationCode) TableName() string {
	return "classification_codes"
}

// ClassificationFilter will be used when querying codes as a batch.
type ClassificationFilter struct {
	Prefix *string              `json:"prefix,omitempty"`
	Query  *string              `json:"query,omitempty"`
	Level  *ClassificationLevel `json:"level,omitempty"`
	Offset *int                 `json:"offset,omitempty"`
	Limit  *int                 `json:"limit,omitempty"`
}

// ClassificationListResult represents the result of querying codes with pagination.
type ClassificationListResult struct {
	TotalCount int64                `json:"totalCount"`
	Codes      []ClassificationCode `json:"codes"`
	Offset     int                  `json:"offset"`
	Limit      int                  `json:"limit"`
}
