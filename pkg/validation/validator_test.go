package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleCoords struct {
	Latitude float64 `json:"latitude" binding:"latitude"`
}

type sampleRequest struct {
	Title     string       `json:"title" binding:"required,min=10,max=100"`
	City      string       `json:"city" binding:"required,city"`
	Type      string       `json:"type" binding:"required,housing"`
	Amenities []string     `json:"amenities" binding:"required,min=1,dive,amenity"`
	Images    []string     `json:"images" binding:"len=6"`
	UserType  string       `json:"userType" binding:"omitempty,usertype"`
	AuthorID  string       `json:"authorId" binding:"omitempty,objectid"`
	Coords    sampleCoords `json:"coordinates"`
}

func validRequest() sampleRequest {
	return sampleRequest{
		Title:     "Cosy flat near the canal",
		City:      "Amsterdam",
		Type:      "apartment",
		Amenities: []string{"Air conditioning", "Fridge"},
		Images:    []string{"1", "2", "3", "4", "5", "6"},
		UserType:  "common",
		AuthorID:  "64b7f0c2a1b2c3d4e5f60718",
		Coords:    sampleCoords{Latitude: 52.37},
	}
}

func TestCustomTags_AcceptValid(t *testing.T) {
	Init()
	req := validRequest()
	assert.NoError(t, binding.Validator.ValidateStruct(&req))
}

func TestToDetails_GroupsByJSONField(t *testing.T) {
	Init()
	req := validRequest()
	req.Title = "short"
	req.City = "Berlin"
	req.Type = "castle"
	req.Amenities = []string{"Jacuzzi"}
	req.Images = []string{"1"}
	req.UserType = "admin"
	req.AuthorID = "nope"
	req.Coords.Latitude = 123

	err := binding.Validator.ValidateStruct(&req)
	require.Error(t, err)

	details := ToDetails(err)
	byField := map[string][]string{}
	for _, d := range details {
		byField[d.Field] = d.Messages
	}

	assert.Equal(t, []string{"must be at least 10 characters long"}, byField["title"])
	assert.Contains(t, byField["city"][0], "Paris")
	assert.Equal(t, []string{"must be one of: apartment, house, room, hotel"}, byField["type"])
	assert.Contains(t, byField, "amenities[0]")
	assert.Equal(t, []string{"must contain exactly 6 items"}, byField["images"])
	assert.Equal(t, []string{"must be one of: pro, normal"}, byField["userType"])
	assert.Equal(t, []string{"must be a valid ObjectId"}, byField["authorId"])
	assert.Equal(t, []string{"must be a valid latitude"}, byField["coordinates.latitude"])
	assert.True(t, IsBindingError(err))
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var dst map[string]any
	err := json.Unmarshal([]byte(`{"title":`), &dst)
	require.Error(t, err)

	assert.Equal(t, []FieldError{{Field: "body", Messages: []string{"invalid json"}}}, ToDetails(err))
}

func TestToDetails_TypeMismatch(t *testing.T) {
	var dst struct {
		Price int `json:"price"`
	}
	err := json.Unmarshal([]byte(`{"price":"cheap"}`), &dst)
	require.Error(t, err)

	details := ToDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "price", details[0].Field)
	assert.True(t, IsBindingError(err))
}

func TestToDetails_Nil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.False(t, IsBindingError(errors.New("boom")))
}
