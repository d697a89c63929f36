package models

// Store is a new store location being opened.
type Store struct {
	ID                   string   `json:"id" yaml:"id"`
	Name                 string   `json:"name" yaml:"name"`
	Location             string   `json:"location" yaml:"location"`
	Aliases              []string `json:"aliases" yaml:"aliases"`
	Status               string   `json:"status" yaml:"status"`
	CompletionPercentage int      `json:"completionPercentage" yaml:"completion_percentage"`
	OpeningDate          string   `json:"openingDate" yaml:"opening_date"`
	Manager              string   `json:"manager" yaml:"manager"`
	Budget               float64  `json:"budget" yaml:"budget"`
	Spent                float64  `json:"spent" yaml:"spent"`
}

// Vendor is a supplier of goods or services to the store-opening program.
type Vendor struct {
	ID                string  `json:"id" yaml:"id"`
	Name              string  `json:"name" yaml:"name"`
	Category          string  `json:"category" yaml:"category"`
	Status            string  `json:"status" yaml:"status"`
	Rating            float64 `json:"rating" yaml:"rating"`
	OnTimeDelivery    int     `json:"onTimeDelivery" yaml:"on_time_delivery"`
	TotalSpend        float64 `json:"totalSpend" yaml:"total_spend"`
	ActiveContracts   int     `json:"activeContracts" yaml:"active_contracts"`
	PrimaryContact    string  `json:"primaryContact" yaml:"primary_contact"`
}

// Task is a high priority item on a store-opening checklist.
type Task struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	StoreID  string `json:"storeId" yaml:"store_id"`
	Assignee string `json:"assignee" yaml:"assignee"`
	DueDate  string `json:"dueDate" yaml:"due_date"`
	Status   string `json:"status" yaml:"status"`
	Priority string `json:"priority" yaml:"priority"`
}

// Contract is an agreement between a vendor and a store.
type Contract struct {
	ID        string  `json:"id" yaml:"id"`
	Title     string  `json:"title" yaml:"title"`
	VendorID  string  `json:"vendorId" yaml:"vendor_id"`
	StoreID   string  `json:"storeId" yaml:"store_id"`
	Value     float64 `json:"value" yaml:"value"`
	StartDate string  `json:"startDate" yaml:"start_date"`
	EndDate   string  `json:"endDate" yaml:"end_date"`
	Status    string  `json:"status" yaml:"status"`
}

// Task statuses used by the sample dataset.
const (
	TaskOverdue    = "overdue"
	TaskInProgress = "in-progress"
	TaskPending    = "pending"
	TaskCompleted  = "completed"
)
