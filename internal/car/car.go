package car

// Car 车辆目录条目（直接对应 data/cars.json 中的一条记录）。
// VIN 在目录内唯一；Availability 是能否下单的唯一依据，
// 由预订流程负责翻转，其余字段均为种子数据。
type Car struct {
	VIN          string  `json:"vin"`
	Type         string  `json:"type"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Description  string  `json:"description"`
	Year         int     `json:"year"`
	Mileage      int     `json:"mileage"`
	FuelType     string  `json:"fuel_type"`
	ImageURL     string  `json:"image_url"`
	PricePerDay  float64 `json:"price_per_day"`
	Availability bool    `json:"availability"`
}
