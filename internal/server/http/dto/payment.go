package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexibleID accepts both a JSON number and a quoted number.
type FlexibleID int64

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = FlexibleID(n)
	return nil
}

func (id FlexibleID) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(id))
}

// PaymentCompleteRequest is posted by the client after a gateway side payment.
type PaymentCompleteRequest struct {
	OrderID FlexibleID `json:"orderID" binding:"required"`
	PayID   string     `json:"payID" binding:"required"`
}
