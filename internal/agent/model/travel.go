package model

import (
	"encoding/json"
	"fmt"
)

type Guide struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

type Hotel struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Address   string  `json:"address"`
	Telephone string  `json:"telephone"`
}

type CarRental struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Package is a bookable trip owned by the backend.
type Package struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Country     string    `json:"country"`
	Destination string    `json:"destination"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    Duration  `json:"duration"`
	PicURL      string    `json:"pic_url"`
	Guide       Guide     `json:"guide"`
	Hotel       Hotel     `json:"hotel"`
	CarRental   CarRental `json:"car_rental"`
}

type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// OrderSummary is the package view of an order returned by the order listing.
type OrderSummary struct {
	Title       string `json:"title"`
	Country     string `json:"country"`
	Destination string `json:"destination"`
}

type Flight struct {
	ID            int    `json:"id"`
	Airline       string `json:"airline"`
	DepartureTime string `json:"departure_time"`
	DeparturePort string `json:"departure_port"`
}

type Room struct {
	ID        int     `json:"id"`
	Hotel     string  `json:"hotel"`
	RoomType  string  `json:"room_type"`
	Address   string  `json:"address"`
	Telephone string  `json:"telephone"`
	Price     float64 `json:"price"`
}

type Restaurant struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Duration is a package length. The backend sends either a label such as
// "5 days" or a bare number of days.
type Duration string

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = Duration(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	*d = Duration(n.String() + " days")
	return nil
}
