// Package entity defines the rows stored in the database.
package entity

// User is a row of the users table.
//
// ID is assigned by the database on insert and never changes. The JSON
// shape renders every field as a string, id included.
type User struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id,string"`
	FirstName string `gorm:"column:first_name;type:text" json:"first_name"`
	LastName  string `gorm:"column:last_name;type:text" json:"last_name"`
	Email     string `gorm:"column:email;type:text" json:"email"`
	BirthDate Date   `gorm:"column:birth_date;type:date" json:"birth_date"`
}

func (User) TableName() string {
	return "users"
}
