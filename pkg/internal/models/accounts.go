package models

type Account struct {
	BaseModel

	Name        string `json:"name"`
	Nick        string `json:"nick"`
	Email       string `json:"email"`
	Password    string `json:"-"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Banner      string `json:"banner"`

	Profiles    []Profile    `json:"profiles" gorm:"foreignKey:AccountID"`
	Posts       []Post       `json:"posts" gorm:"foreignKey:AccountID"`
	Collections []Collection `json:"collections" gorm:"foreignKey:AccountID"`
}
