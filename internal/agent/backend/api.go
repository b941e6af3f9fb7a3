package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Trippy-actions/server/internal/agent/model"
)

// Info topics served by /info/<topic>.
const (
	InfoCompany = "company"
	InfoContact = "contact"
)

type packagesReply struct {
	Packages []model.Package `json:"packages"`
}

type flightsReply struct {
	Flights []model.Flight `json:"flights"`
}

type roomsReply struct {
	Rooms []model.Room `json:"rooms"`
}

type orderChange struct {
	Username    string `json:"username"`
	Destination string `json:"destination"`
	FlightID    int    `json:"flight_id,omitempty"`
	HotelID     int    `json:"hotel_id,omitempty"`
}

// Login returns the status of POST /user/login.
func (c *Client) Login(ctx context.Context, user model.User) (int, error) {
	r, err := c.Post(ctx, "/user/login", user)
	if err != nil {
		return 0, err
	}
	return r.Status, nil
}

// Register returns the status of POST /user/register.
func (c *Client) Register(ctx context.Context, user model.User) (int, error) {
	r, err := c.Post(ctx, "/user/register", user)
	if err != nil {
		return 0, err
	}
	return r.Status, nil
}

// UsernameAvailable asks the backend whether username is still free.
func (c *Client) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	r, err := c.Get(ctx, "/user/available", url.Values{"username": {username}})
	if err != nil {
		return false, err
	}
	if err := expectOK(http.MethodGet, "/user/available", r); err != nil {
		return false, err
	}
	var reply struct {
		Available bool `json:"available"`
	}
	if err := r.Decode(&reply); err != nil {
		return false, err
	}
	return reply.Available, nil
}

// UserOrders lists the order summaries of username.
func (c *Client) UserOrders(ctx context.Context, username string) ([]model.OrderSummary, error) {
	r, err := c.Get(ctx, "/user/orders", url.Values{"username": {username}})
	if err != nil {
		return nil, err
	}
	if err := expectOK(http.MethodGet, "/user/orders", r); err != nil {
		return nil, err
	}
	var orders []model.OrderSummary
	if err := r.Decode(&orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// PackagesByDestination returns the packages going to destination.
func (c *Client) PackagesByDestination(ctx context.Context, destination string) ([]model.Package, error) {
	return c.packages(ctx, "/package/destination", url.Values{"destination": {destination}})
}

// CountryPackages returns up to limit packages in country, skipping exclude.
func (c *Client) CountryPackages(ctx context.Context, country string, exclude []int, limit int) ([]model.Package, error) {
	q := pageQuery(exclude, limit)
	q.Set("country", country)
	return c.packages(ctx, "/package/country", q)
}

// PopularPackages returns up to limit popular packages, skipping exclude.
func (c *Client) PopularPackages(ctx context.Context, exclude []int, limit int) ([]model.Package, error) {
	return c.packages(ctx, "/package/popular", pageQuery(exclude, limit))
}

func (c *Client) packages(ctx context.Context, path string, q url.Values) ([]model.Package, error) {
	r, err := c.Get(ctx, path, q)
	if err != nil {
		return nil, err
	}
	if err := expectOK(http.MethodGet, path, r); err != nil {
		return nil, err
	}
	var reply packagesReply
	if err := r.Decode(&reply); err != nil {
		return nil, err
	}
	return reply.Packages, nil
}

// CreateOrder returns the status of POST /order (201 created, 400 duplicate).
func (c *Client) CreateOrder(ctx context.Context, username string, packageID int) (int, error) {
	r, err := c.Post(ctx, "/order", map[string]any{
		"username":   username,
		"package_id": packageID,
	})
	if err != nil {
		return 0, err
	}
	return r.Status, nil
}

// CancelOrder returns the status of DELETE /order (200 canceled, 404 unknown).
func (c *Client) CancelOrder(ctx context.Context, username, destination string) (int, error) {
	r, err := c.Delete(ctx, "/order", url.Values{
		"username":    {username},
		"destination": {destination},
	})
	if err != nil {
		return 0, err
	}
	return r.Status, nil
}

// NextFlight returns the next available flight not in exclude, or nil when none is left.
func (c *Client) NextFlight(ctx context.Context, username, destination string, exclude []int) (*model.Flight, error) {
	r, err := c.Get(ctx, "/flight/available", offerQuery(username, destination, exclude))
	if err != nil {
		return nil, err
	}
	if r.Status == http.StatusNotFound {
		return nil, nil
	}
	if err := expectOK(http.MethodGet, "/flight/available", r); err != nil {
		return nil, err
	}
	var reply flightsReply
	if err := r.Decode(&reply); err != nil {
		return nil, err
	}
	for i := range reply.Flights {
		if !contains(exclude, reply.Flights[i].ID) {
			return &reply.Flights[i], nil
		}
	}
	return nil, nil
}

// NextRoom returns the next available room not in exclude, or nil when none is left.
func (c *Client) NextRoom(ctx context.Context, username, destination string, exclude []int) (*model.Room, error) {
	r, err := c.Get(ctx, "/hotel/available", offerQuery(username, destination, exclude))
	if err != nil {
		return nil, err
	}
	if r.Status == http.StatusNotFound {
		return nil, nil
	}
	if err := expectOK(http.MethodGet, "/hotel/available", r); err != nil {
		return nil, err
	}
	var reply roomsReply
	if err := r.Decode(&reply); err != nil {
		return nil, err
	}
	for i := range reply.Rooms {
		if !contains(exclude, reply.Rooms[i].ID) {
			return &reply.Rooms[i], nil
		}
	}
	return nil, nil
}

// ChangeFlight commits flightID on the order of username to destination.
func (c *Client) ChangeFlight(ctx context.Context, username, destination string, flightID int) (int, error) {
	r, err := c.Put(ctx, "/order/flight", orderChange{Username: username, Destination: destination, FlightID: flightID})
	if err != nil {
		return 0, err
	}
	return r.Status, nil
}

// ChangeRoom commits hotelID on the order of username to destination.
func (c *Client) ChangeRoom(ctx context.Context, username, destination string, hotelID int) (int, error) {
	r, err := c.Put(ctx, "/order/hotel", orderChange{Username: username, Destination: destination, HotelID: hotelID})
	if err != nil {
		return 0, err
	}
	return r.Status, nil
}

// ChangeGuide reassigns the guide of an order. The guide is nil unless the status is 200.
func (c *Client) ChangeGuide(ctx context.Context, username, destination string) (int, *model.Guide, error) {
	r, err := c.Put(ctx, "/order/guide", orderChange{Username: username, Destination: destination})
	if err != nil {
		return 0, nil, err
	}
	if r.Status != http.StatusOK {
		return r.Status, nil, nil
	}
	var reply struct {
		Guide model.Guide `json:"guide"`
	}
	if err := r.Decode(&reply); err != nil {
		return r.Status, nil, err
	}
	return r.Status, &reply.Guide, nil
}

// Restaurant returns a substitute restaurant near destination, or nil when
// there is none.
func (c *Client) Restaurant(ctx context.Context, destination string) (*model.Restaurant, error) {
	r, err := c.Get(ctx, "/restaurant", url.Values{"destination": {destination}})
	if err != nil {
		return nil, err
	}
	if r.Status == http.StatusNotFound {
		return nil, nil
	}
	if err := expectOK(http.MethodGet, "/restaurant", r); err != nil {
		return nil, err
	}
	var reply struct {
		Restaurant model.Restaurant `json:"restaurant"`
	}
	if err := r.Decode(&reply); err != nil {
		return nil, err
	}
	return &reply.Restaurant, nil
}

// Info returns the text served at /info/<topic>.
func (c *Client) Info(ctx context.Context, topic string) (string, error) {
	path := "/info/" + url.PathEscape(topic)
	r, err := c.Get(ctx, path, nil)
	if err != nil {
		return "", err
	}
	if err := expectOK(http.MethodGet, path, r); err != nil {
		return "", err
	}
	var reply struct {
		Info string `json:"info"`
	}
	if err := r.Decode(&reply); err != nil {
		return "", err
	}
	return reply.Info, nil
}

func pageQuery(exclude []int, limit int) url.Values {
	q := url.Values{}
	if len(exclude) > 0 {
		q.Set("exclude", joinIDs(exclude))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func offerQuery(username, destination string, exclude []int) url.Values {
	q := url.Values{}
	if username != "" {
		q.Set("username", username)
	}
	if destination != "" {
		q.Set("destination", destination)
	}
	if len(exclude) > 0 {
		q.Set("exclude", joinIDs(exclude))
	}
	return q
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
