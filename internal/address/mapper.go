package address

type Response struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

func ToResponse(a *ShippingAddress) *Response {
	if a == nil {
		return nil
	}
	return &Response{
		Address: a.Address,
		City:    a.City,
		State:   a.State,
		Zipcode: a.Zipcode,
	}
}
