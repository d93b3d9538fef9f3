package extract

// Item is a candidate purchased item recovered from receipt text
type Item struct {
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// itemWire tolerates the looser numeric types LLMs produce
type itemWire struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

func (w itemWire) toItem() Item {
	item := Item{
		Name:       w.Name,
		UnitPrice:  w.Price,
		Quantity:   int(w.Quantity),
		TotalPrice: w.TotalPrice,
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.TotalPrice == 0 {
		item.TotalPrice = item.UnitPrice * float64(item.Quantity)
	}
	return item
}
