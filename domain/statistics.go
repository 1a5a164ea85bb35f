package domain

var (
	MessageSuccessGetStatistics = "statistics retrieved successfully"
	MessageFailedGetStatistics  = "failed to retrieve statistics"
)

type (
	CategoryCount struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	MonthlySpend struct {
		Month string  `json:"month"`
		Total float64 `json:"total"`
	}

	StatisticsResponse struct {
		TotalSpend      float64         `json:"total_spend"`
		TotalItems      int64           `json:"total_items"`
		AvailableItems  int64           `json:"available_items"`
		TopCategories   []CategoryCount `json:"top_categories"`
		MonthlySpend    []MonthlySpend  `json:"monthly_spend"`
		AvgReceiptValue float64         `json:"avg_receipt_value"`
	}
)
