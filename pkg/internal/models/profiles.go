package models

import "time"

const (
	ProfileTypeCharacter    = "character"
	ProfileTypeItem         = "item"
	ProfileTypeKinship      = "kinship"
	ProfileTypeOrganization = "organization"
	ProfileTypeLocation     = "location"
)

var ProfileTypes = []string{
	ProfileTypeCharacter,
	ProfileTypeItem,
	ProfileTypeKinship,
	ProfileTypeOrganization,
	ProfileTypeLocation,
}

type Profile struct {
	BaseModel

	Type        string `json:"type"`
	Name        string `json:"name"`
	Nick        string `json:"nick"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Banner      string `json:"banner"`

	// Parent, when present, must be a character owned by the same account.
	ParentID *uint    `json:"parent_id"`
	Parent   *Profile `json:"parent" gorm:"foreignKey:ParentID"`

	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`

	Editors []ProfileEditor `json:"editors" gorm:"foreignKey:ProfileID"`
}

type ProfileEditor struct {
	ProfileID uint      `json:"profile_id" gorm:"primaryKey;autoIncrement:false"`
	AccountID uint      `json:"account_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`

	Account Account `json:"account"`
}
