package catalog

import (
	"fmt"
	"time"

	"github.com/spoke-dev/spoke/internal/model"
	"github.com/spoke-dev/spoke/internal/resource"
)

var (
	repairStatuses = []string{"Pending", "In Progress", "Completed", "Cancelled"}
	buildStatuses  = []string{"Pending", "In Progress", "Completed", "Cancelled"}
	quoteStatuses  = []string{"Pending", "Approved", "Rejected", "Converted to Build/Repair"}
	txStatuses     = []string{"Completed", "Pending", "Refunded"}
	roles          = []string{"customer", "admin"}
)

// Users builds the controller for staff and customer accounts. A blank
// password while editing means "keep current" and is omitted from the
// update body.
func Users(deps resource.Deps) *resource.Controller[model.User] {
	fields := []resource.Field{
		{Name: "username", Label: "Username", Required: true},
		{Name: "email", Label: "Email", Required: true},
		{Name: "password", Label: "Password", Kind: resource.Password, Required: true},
		{Name: "first_name", Label: "First Name"},
		{Name: "last_name", Label: "Last Name"},
		{Name: "role", Label: "Role", Kind: resource.Select, Options: roles, Default: "customer"},
	}
	return resource.New(resource.Spec[model.User]{
		Name:     "users",
		Title:    "Users",
		Singular: "User",
		Path:     "/users",
		Fields:   fields,
		Columns:  []string{"ID", "Username", "Email", "Role", "Name"},
		ID:       func(u model.User) int64 { return u.ID },
		Row: func(u model.User) []string {
			return []string{
				intString(u.ID), u.Username, u.Email, u.Role,
				joinName(u.FirstName, u.LastName),
			}
		},
		OnSubmit: func(f resource.Form, editing bool) map[string]any {
			body := baseBody(fields, f)
			if editing && f["password"] == "" {
				delete(body, "password")
			}
			return body
		},
		OnEdit: func(u model.User) resource.Form {
			return resource.Form{
				"username":   u.Username,
				"email":      u.Email,
				"password":   "", // never pre-filled
				"first_name": u.FirstName,
				"last_name":  u.LastName,
				"role":       defaultString(u.Role, "customer"),
			}
		},
	}, deps)
}

// Bikes builds the controller for customer bicycles.
func Bikes(deps resource.Deps) *resource.Controller[model.Bike] {
	fields := []resource.Field{
		{Name: "user_id", Label: "User ID", Kind: resource.Number, Required: true},
		{Name: "make", Label: "Make", Required: true},
		{Name: "model", Label: "Model", Required: true},
		{Name: "year", Label: "Year", Kind: resource.Number},
		{Name: "frame_number", Label: "Frame Number", Required: true},
		{Name: "color", Label: "Color"},
		{Name: "bike_type", Label: "Bike Type"},
		{Name: "notes", Label: "Notes", Kind: resource.Multiline},
	}
	return resource.New(resource.Spec[model.Bike]{
		Name:     "bikes",
		Title:    "Bikes",
		Singular: "Bike",
		Path:     "/bikes",
		Fields:   fields,
		Columns:  []string{"ID", "Make", "Model", "Year", "Frame #", "Owner"},
		ID:       func(b model.Bike) int64 { return b.ID },
		Row: func(b model.Bike) []string {
			return []string{
				intString(b.ID), b.Make, b.Model, intString(b.Year),
				b.FrameNumber, intString(b.UserID),
			}
		},
		OnSubmit: func(f resource.Form, _ bool) map[string]any {
			return baseBody(fields, f)
		},
		OnEdit: func(b model.Bike) resource.Form {
			return resource.Form{
				"user_id":      intString(b.UserID),
				"make":         b.Make,
				"model":        b.Model,
				"year":         intString(b.Year),
				"frame_number": b.FrameNumber,
				"color":        b.Color,
				"bike_type":    b.BikeType,
				"notes":        b.Notes,
			}
		},
	}, deps)
}

// Repairs builds the controller for repair jobs.
func Repairs(deps resource.Deps) *resource.Controller[model.Repair] {
	fields := []resource.Field{
		{Name: "customer_name", Label: "Customer Name", Required: true},
		{Name: "customer_email", Label: "Customer Email"},
		{Name: "customer_phone", Label: "Customer Phone"},
		{Name: "bike_make", Label: "Bike Make", Required: true},
		{Name: "bike_model", Label: "Bike Model", Required: true},
		{Name: "issue_description", Label: "Issue Description", Kind: resource.Multiline, Required: true},
		{Name: "status", Label: "Status", Kind: resource.Select, Options: repairStatuses, Default: "Pending"},
		{Name: "estimated_cost", Label: "Estimated Cost", Kind: resource.Number},
		{Name: "notes", Label: "Notes", Kind: resource.Multiline},
	}
	return resource.New(resource.Spec[model.Repair]{
		Name:     "repairs",
		Title:    "Repairs",
		Singular: "Repair",
		Path:     "/repairs",
		Fields:   fields,
		Columns:  []string{"ID", "Customer", "Bike", "Status", "Est. Cost"},
		ID:       func(r model.Repair) int64 { return r.ID },
		Row: func(r model.Repair) []string {
			return []string{
				intString(r.ID), r.CustomerName,
				joinName(r.BikeMake, r.BikeModel), r.Status,
				floatString(r.EstimatedCost),
			}
		},
		OnSubmit: func(f resource.Form, _ bool) map[string]any {
			return baseBody(fields, f)
		},
		OnEdit: func(r model.Repair) resource.Form {
			return resource.Form{
				"customer_name":     r.CustomerName,
				"customer_email":    r.CustomerEmail,
				"customer_phone":    r.CustomerPhone,
				"bike_make":         r.BikeMake,
				"bike_model":        r.BikeModel,
				"issue_description": r.IssueDescription,
				"status":            defaultString(r.Status, "Pending"),
				"estimated_cost":    floatString(r.EstimatedCost),
				"notes":             r.Notes,
			}
		},
	}, deps)
}

// Parts builds the controller for inventory items. Compatible bike types
// are edited as a comma-separated string and transmitted as an array.
func Parts(deps resource.Deps) *resource.Controller[model.Part] {
	fields := []resource.Field{
		{Name: "name", Label: "Part Name", Required: true},
		{Name: "description", Label: "Description", Kind: resource.Multiline},
		{Name: "manufacturer", Label: "Manufacturer"},
		{Name: "part_number", Label: "Part Number"},
		{Name: "price", Label: "Price", Kind: resource.Number, Required: true},
		{Name: "stock_quantity", Label: "Stock Quantity", Kind: resource.Number, Required: true},
		{Name: "supplier", Label: "Supplier"},
		{Name: "category", Label: "Category"},
		{Name: "compatible_bike_types", Label: "Compatible Bike Types (comma-separated)", Kind: resource.List},
	}
	return resource.New(resource.Spec[model.Part]{
		Name:     "parts",
		Title:    "Parts",
		Singular: "Part",
		Path:     "/parts",
		Fields:   fields,
		Columns:  []string{"ID", "Name", "Part #", "Price", "Stock", "Category"},
		ID:       func(p model.Part) int64 { return p.ID },
		Row: func(p model.Part) []string {
			return []string{
				intString(p.ID), p.Name, p.PartNumber,
				floatString(p.Price), intString(p.StockQuantity), p.Category,
			}
		},
		OnSubmit: func(f resource.Form, _ bool) map[string]any {
			return baseBody(fields, f)
		},
		OnEdit: func(p model.Part) resource.Form {
			return resource.Form{
				"name":                  p.Name,
				"description":           p.Description,
				"manufacturer":          p.Manufacturer,
				"part_number":           p.PartNumber,
				"price":                 floatString(p.Price),
				"stock_quantity":        intString(p.StockQuantity),
				"supplier":              p.Supplier,
				"category":              p.Category,
				"compatible_bike_types": csvJoin(p.CompatibleBikeTypes),
			}
		},
	}, deps)
}

// Quotes builds the controller for customer cost estimates.
func Quotes(deps resource.Deps) *resource.Controller[model.Quote] {
	fields := []resource.Field{
		{Name: "customer_id", Label: "Customer ID", Kind: resource.Number, Required: true},
		{Name: "bike_id", Label: "Bike ID", Kind: resource.Number, Required: true},
		{Name: "description", Label: "Description", Kind: resource.Multiline, Required: true},
		{Name: "estimated_cost", Label: "Estimated Cost", Kind: resource.Number, Required: true},
		{Name: "status", Label: "Status", Kind: resource.Select, Options: quoteStatuses, Default: "Pending"},
		{Name: "created_date", Label: "Created Date", Kind: resource.Date},
		{Name: "expiry_date", Label: "Expiry Date", Kind: resource.Date},
		{Name: "notes", Label: "Notes", Kind: resource.Multiline},
	}
	return resource.New(resource.Spec[model.Quote]{
		Name:     "quotes",
		Title:    "Quotes",
		Singular: "Quote",
		Path:     "/quotes",
		Fields:   fields,
		Columns:  []string{"ID", "Customer", "Bike", "Status", "Est. Cost", "Expires"},
		ID:       func(q model.Quote) int64 { return q.ID },
		Row: func(q model.Quote) []string {
			return []string{
				intString(q.ID), intString(q.CustomerID), intString(q.BikeID),
				q.Status, floatString(q.EstimatedCost), dateOnly(q.ExpiryDate),
			}
		},
		OnSubmit: func(f resource.Form, _ bool) map[string]any {
			return baseBody(fields, f)
		},
		OnEdit: func(q model.Quote) resource.Form {
			return resource.Form{
				"customer_id":    intString(q.CustomerID),
				"bike_id":        intString(q.BikeID),
				"description":    q.Description,
				"estimated_cost": floatString(q.EstimatedCost),
				"status":         defaultString(q.Status, "Pending"),
				"created_date":   dateOnly(q.CreatedDate),
				"expiry_date":    dateOnly(q.ExpiryDate),
				"notes":          q.Notes,
			}
		},
	}, deps)
}

// CustomBuilds builds the controller for commissioned builds.
func CustomBuilds(deps resource.Deps) *resource.Controller[model.CustomBuild] {
	fields := []resource.Field{
		{Name: "customer_id", Label: "Customer ID", Kind: resource.Number, Required: true},
		{Name: "bike_id", Label: "Bike ID", Kind: resource.Number, Required: true},
		{Name: "build_name", Label: "Build Name", Required: true},
		{Name: "description", Label: "Description", Kind: resource.Multiline},
		{Name: "estimated_cost", Label: "Estimated Cost", Kind: resource.Number},
		{Name: "final_cost", Label: "Final Cost", Kind: resource.Number},
		{Name: "status", Label: "Status", Kind: resource.Select, Options: buildStatuses, Default: "Pending"},
		{Name: "start_date", Label: "Start Date", Kind: resource.Date},
		{Name: "completion_date", Label: "Completion Date", Kind: resource.Date},
		{Name: "notes", Label: "Notes", Kind: resource.Multiline},
	}
	return resource.New(resource.Spec[model.CustomBuild]{
		Name:     "custom_builds",
		Title:    "Custom Builds",
		Singular: "Custom Build",
		Path:     "/custom_builds",
		Fields:   fields,
		Columns:  []string{"ID", "Build", "Customer", "Status", "Est. Cost", "Final Cost"},
		ID:       func(b model.CustomBuild) int64 { return b.ID },
		Row: func(b model.CustomBuild) []string {
			return []string{
				intString(b.ID), b.BuildName, intString(b.CustomerID),
				b.Status, floatString(b.EstimatedCost), floatString(b.FinalCost),
			}
		},
		OnSubmit: func(f resource.Form, _ bool) map[string]any {
			return baseBody(fields, f)
		},
		OnEdit: func(b model.CustomBuild) resource.Form {
			return resource.Form{
				"customer_id":     intString(b.CustomerID),
				"bike_id":         intString(b.BikeID),
				"build_name":      b.BuildName,
				"description":     b.Description,
				"estimated_cost":  floatString(b.EstimatedCost),
				"final_cost":      floatString(b.FinalCost),
				"status":          defaultString(b.Status, "Pending"),
				"start_date":      dateOnly(b.StartDate),
				"completion_date": dateOnly(b.CompletionDate),
				"notes":           b.Notes,
			}
		},
	}, deps)
}

// CustomBuildComponents builds the controller for build line items.
func CustomBuildComponents(deps resource.Deps) *resource.Controller[model.CustomBuildComponent] {
	fields := []resource.Field{
		{Name: "custom_build_id", Label: "Custom Build ID", Kind: resource.Number, Required: true},
		{Name: "part_id", Label: "Part ID (optional)", Kind: resource.Number},
		{Name: "component_name", Label: "Component Name", Required: true},
		{Name: "chosen_part_name", Label: "Chosen Part Name"},
		{Name: "quantity", Label: "Quantity", Kind: resource.Number, Required: true},
		{Name: "unit_price", Label: "Unit Price", Kind: resource.Number, Required: true},
	}
	return resource.New(resource.Spec[model.CustomBuildComponent]{
		Name:     "custom_build_components",
		Title:    "Custom Build Components",
		Singular: "Component",
		Path:     "/custom_build_components",
		Fields:   fields,
		Columns:  []string{"ID", "Build", "Component", "Part", "Qty", "Unit Price"},
		ID:       func(c model.CustomBuildComponent) int64 { return c.ID },
		Row: func(c model.CustomBuildComponent) []string {
			return []string{
				intString(c.ID), intString(c.CustomBuildID), c.ComponentName,
				c.ChosenPartName, intString(c.Quantity), floatString(c.UnitPrice),
			}
		},
		OnSubmit: func(f resource.Form, _ bool) map[string]any {
			return baseBody(fields, f)
		},
		OnEdit: func(c model.CustomBuildComponent) resource.Form {
			return resource.Form{
				"custom_build_id":  intString(c.CustomBuildID),
				"part_id":          intString(c.PartID),
				"component_name":   c.ComponentName,
				"chosen_part_name": c.ChosenPartName,
				"quantity":         intString(c.Quantity),
				"unit_price":       floatString(c.UnitPrice),
			}
		},
	}, deps)
}

// Transactions builds the controller for payments. A blank transaction
// date defaults to the time of submission.
func Transactions(deps resource.Deps) *resource.Controller[model.Transaction] {
	fields := []resource.Field{
		{Name: "repair_id", Label: "Repair ID (optional)", Kind: resource.Number},
		{Name: "custom_build_id", Label: "Custom Build ID (optional)", Kind: resource.Number},
		{Name: "user_id", Label: "User ID", Kind: resource.Number, Required: true},
		{Name: "transaction_date", Label: "Transaction Date", Kind: resource.Date},
		{Name: "amount", Label: "Amount", Kind: resource.Number, Required: true},
		{Name: "payment_method", Label: "Payment Method", Required: true},
		{Name: "status", Label: "Status", Kind: resource.Select, Options: txStatuses, Default: "Completed"},
		{Name: "notes", Label: "Notes", Kind: resource.Multiline},
	}
	return resource.New(resource.Spec[model.Transaction]{
		Name:     "transactions",
		Title:    "Transactions",
		Singular: "Transaction",
		Path:     "/transactions",
		Fields:   fields,
		Columns:  []string{"ID", "Date", "User", "Amount", "Method", "Status"},
		ID:       func(t model.Transaction) int64 { return t.ID },
		Row: func(t model.Transaction) []string {
			return []string{
				intString(t.ID), dateOnly(t.TransactionDate), intString(t.UserID),
				floatString(t.Amount), t.PaymentMethod, t.Status,
			}
		},
		OnSubmit: func(f resource.Form, _ bool) map[string]any {
			body := baseBody(fields, f)
			if body["transaction_date"] == nil {
				body["transaction_date"] = time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
			}
			return body
		},
		OnEdit: func(t model.Transaction) resource.Form {
			return resource.Form{
				"repair_id":        intString(t.RepairID),
				"custom_build_id":  intString(t.CustomBuildID),
				"user_id":          intString(t.UserID),
				"transaction_date": dateOnly(t.TransactionDate),
				"amount":           floatString(t.Amount),
				"payment_method":   t.PaymentMethod,
				"status":           defaultString(t.Status, "Completed"),
				"notes":            t.Notes,
			}
		},
	}, deps)
}

// All returns the eight resource screens in navigation order.
func All(deps resource.Deps) []resource.Screen {
	return []resource.Screen{
		Users(deps),
		Bikes(deps),
		Repairs(deps),
		Parts(deps),
		Quotes(deps),
		CustomBuilds(deps),
		Transactions(deps),
		CustomBuildComponents(deps),
	}
}

// Lookup returns the screen for the given endpoint name.
func Lookup(name string, deps resource.Deps) (resource.Screen, error) {
	for _, s := range All(deps) {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown resource %q", name)
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
