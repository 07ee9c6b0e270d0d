package model

import "time"

// Category is a spending or income bucket transactions are assigned to.
type Category struct {
	CreatedAt time.Time
	Name      string
	ParentID  *int64
	ID        int64
}

// DefaultCategories are seeded into an empty database.
var DefaultCategories = []string{
	"Bills & Subscriptions",
	"Clothing",
	"Coffee Shops",
	"Doctor",
	"Education",
	"Electronics",
	"Entertainment",
	"Fees & Charges",
	"Flights",
	"Food & Dining",
	"Freelance",
	"Games",
	"Gas & Fuel",
	"Gifts & Donations",
	"Groceries",
	"Gym",
	"Health & Fitness",
	"Home & Garden",
	"Hotels",
	"Housing",
	"Income",
	"Insurance",
	"Interest",
	"Movies & Shows",
	"Parking",
	"Personal Care",
	"Pharmacy",
	"Public Transit",
	"Rent/Mortgage",
	"Restaurants",
	"Ride Share",
	"Shopping",
	"Streaming",
	"Transfer",
	"Transportation",
	"Travel",
	"Uncategorized",
	"Utilities",
}

// FindCategoryByID returns the category with the given id, or nil.
func FindCategoryByID(categories []Category, id int64) *Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}
