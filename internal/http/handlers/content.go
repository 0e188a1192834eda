package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Featured site content served to the marketing pages. Compiled in: the
// website copy changes through deploys, not through the database.

type Destination struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
}

type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

var featuredDestinations = []Destination{
	{
		Name:        "Maldives Luxury Resort",
		Description: "Experience paradise in the Indian Ocean",
		Longitude:   73.5,
		Latitude:    4.2,
	},
	{
		Name:        "Swiss Alps Retreat",
		Description: "Mountain luxury at its finest",
		Longitude:   8.2,
		Latitude:    46.8,
	},
	{
		Name:        "Santorini Villa",
		Description: "Mediterranean elegance and charm",
		Longitude:   25.4,
		Latitude:    36.4,
	},
}

var testimonials = []Testimonial{
	{
		Name:    "Hiatham & Zartasha",
		Role:    "Costa Navarino, Greece",
		Content: "We are so grateful for you planning our 10 year anniversary trip. Finding the best hotels possible with the added bonus of sourcing them at fantastic rates. Honestly you made everything so seamless, went above and beyond in providing experienced, professional and thoughtful advice, taking away the headache of multiple bookings.",
	},
	{
		Name:    "Tina",
		Role:    "Bodrum, Turkey",
		Content: "The service was exceptional from start to finish. Rosina secured us an amazing price for the exact specifications we needed for our family. I would highly recommend, and will definitely be booking my next getaway through Nomad Luxury Travel.",
	},
	{
		Name:    "Rosina",
		Role:    "Nomad Co-Founder",
		Content: "From private islands to mountain retreats, they crafted the perfect blend of luxury and adventure for our family.",
	},
}

// GET /api/destinations
func GetDestinations(c *gin.Context) {
	c.JSON(http.StatusOK, featuredDestinations)
}

// GET /api/testimonials
func GetTestimonials(c *gin.Context) {
	c.JSON(http.StatusOK, testimonials)
}
