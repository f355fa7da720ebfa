// Package model defines the record types managed through the repair shop API.
// Field names and JSON tags follow the backend contract; the backend assigns
// every record a numeric id.
package model

// Identity is the authenticated user's profile as resolved from the token.
type Identity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// User is a staff or customer account.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Bike is a customer's bicycle on file.
type Bike struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int64  `json:"year"`
	FrameNumber string `json:"frame_number"`
	Color       string `json:"color"`
	BikeType    string `json:"bike_type"`
	Notes       string `json:"notes"`
}

// Repair is a repair job, possibly for a walk-in customer with no account.
type Repair struct {
	ID               int64   `json:"id"`
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email"`
	CustomerPhone    string  `json:"customer_phone"`
	BikeMake         string  `json:"bike_make"`
	BikeModel        string  `json:"bike_model"`
	IssueDescription string  `json:"issue_description"`
	Status           string  `json:"status"`
	EstimatedCost    float64 `json:"estimated_cost"`
	Notes            string  `json:"notes"`
}

// Part is a stocked inventory item. CompatibleBikeTypes travels as an array
// on the wire but is edited as a comma-separated string.
type Part struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Manufacturer        string   `json:"manufacturer"`
	PartNumber          string   `json:"part_number"`
	Price               float64  `json:"price"`
	StockQuantity       int64    `json:"stock_quantity"`
	Supplier            string   `json:"supplier"`
	Category            string   `json:"category"`
	CompatibleBikeTypes []string `json:"compatible_bike_types"`
}

// Quote is a cost estimate offered to a customer. Dates are ISO-8601
// timestamps on the wire and date-only strings in edit buffers.
type Quote struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customer_id"`
	BikeID        int64   `json:"bike_id"`
	Description   string  `json:"description"`
	EstimatedCost float64 `json:"estimated_cost"`
	Status        string  `json:"status"`
	CreatedDate   string  `json:"created_date"`
	ExpiryDate    string  `json:"expiry_date"`
	Notes         string  `json:"notes"`
}

// CustomBuild is a from-scratch bike build commissioned by a customer.
type CustomBuild struct {
	ID             int64   `json:"id"`
	CustomerID     int64   `json:"customer_id"`
	BikeID         int64   `json:"bike_id"`
	BuildName      string  `json:"build_name"`
	Description    string  `json:"description"`
	EstimatedCost  float64 `json:"estimated_cost"`
	FinalCost      float64 `json:"final_cost"`
	Status         string  `json:"status"`
	StartDate      string  `json:"start_date"`
	CompletionDate string  `json:"completion_date"`
	Notes          string  `json:"notes"`
}

// CustomBuildComponent is one line item of a custom build.
type CustomBuildComponent struct {
	ID             int64   `json:"id"`
	CustomBuildID  int64   `json:"custom_build_id"`
	PartID         int64   `json:"part_id"`
	ComponentName  string  `json:"component_name"`
	ChosenPartName string  `json:"chosen_part_name"`
	Quantity       int64   `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
}

// Transaction is a payment against a repair or custom build.
type Transaction struct {
	ID              int64   `json:"id"`
	RepairID        int64   `json:"repair_id"`
	CustomBuildID   int64   `json:"custom_build_id"`
	UserID          int64   `json:"user_id"`
	TransactionDate string  `json:"transaction_date"`
	Amount          float64 `json:"amount"`
	PaymentMethod   string  `json:"payment_method"`
	Status          string  `json:"status"`
	Notes           string  `json:"notes"`
}
