package models

import "time"

// Each page content struct maps to a singleton document in its own
// collection, keyed by the fixed Page field. Arrays are replaced
// wholesale on update, never merged.

// Stat is a headline number shown on the homepage and about page
type Stat struct {
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
}

// Offer is a promotional block on the homepage
type Offer struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Badge       string `bson:"badge" json:"badge"`
	Image       string `bson:"image" json:"image"`
}

// Testimonial is a short customer quote on the homepage
type Testimonial struct {
	Name   string `bson:"name" json:"name"`
	Quote  string `bson:"quote" json:"quote"`
	Rating int    `bson:"rating" json:"rating"`
}

// TeamMember is a staff entry on the about page
type TeamMember struct {
	Name  string `bson:"name" json:"name"`
	Role  string `bson:"role" json:"role"`
	Bio   string `bson:"bio" json:"bio"`
	Image string `bson:"image" json:"image"`
}

// Milestone is a company history entry on the about page
type Milestone struct {
	Year        string `bson:"year" json:"year"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

// BusinessHour is one row of the opening hours table
type BusinessHour struct {
	Day    string `bson:"day" json:"day"`
	Open   string `bson:"open" json:"open"`
	Close  string `bson:"close" json:"close"`
	Closed bool   `bson:"closed" json:"closed"`
}

// Landmark is a nearby point of interest on the location page
type Landmark struct {
	Name        string `bson:"name" json:"name"`
	Distance    string `bson:"distance" json:"distance"`
	Description string `bson:"description" json:"description"`
}

// TourRoute is a suggested driving route on the tour routes page
type TourRoute struct {
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description" json:"description"`
	Distance    string   `bson:"distance" json:"distance"`
	Duration    string   `bson:"duration" json:"duration"`
	Highlights  []string `bson:"highlights" json:"highlights"`
	Image       string   `bson:"image" json:"image"`
}

// HomepageContent is the singleton document for the homepage copy
type HomepageContent struct {
	Page         string        `bson:"page" json:"page"`
	HeroTitle    string        `bson:"heroTitle" json:"heroTitle"`
	HeroSubtitle string        `bson:"heroSubtitle" json:"heroSubtitle"`
	HeroImage    string        `bson:"heroImage" json:"heroImage"`
	CTATitle     string        `bson:"ctaTitle" json:"ctaTitle"`
	CTASubtitle  string        `bson:"ctaSubtitle" json:"ctaSubtitle"`
	Stats        []Stat        `bson:"stats" json:"stats"`
	Offers       []Offer       `bson:"offers" json:"offers"`
	Testimonials []Testimonial `bson:"testimonials" json:"testimonials"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// AboutContent is the singleton document for the about page copy
type AboutContent struct {
	Page        string       `bson:"page" json:"page"`
	Title       string       `bson:"title" json:"title"`
	Intro       string       `bson:"intro" json:"intro"`
	Story       string       `bson:"story" json:"story"`
	Mission     string       `bson:"mission" json:"mission"`
	Image       string       `bson:"image" json:"image"`
	Stats       []Stat       `bson:"stats" json:"stats"`
	TeamMembers []TeamMember `bson:"teamMembers" json:"teamMembers"`
	Milestones  []Milestone  `bson:"milestones" json:"milestones"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// ContactContent is the singleton document for the contact page copy
type ContactContent struct {
	Page          string         `bson:"page" json:"page"`
	Title         string         `bson:"title" json:"title"`
	Intro         string         `bson:"intro" json:"intro"`
	Phone         string         `bson:"phone" json:"phone"`
	Email         string         `bson:"email" json:"email"`
	WhatsApp      string         `bson:"whatsapp" json:"whatsapp"`
	Address       string         `bson:"address" json:"address"`
	MapEmbedURL   string         `bson:"mapEmbedUrl" json:"mapEmbedUrl"`
	BusinessHours []BusinessHour `bson:"businessHours" json:"businessHours"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// LocationContent is the singleton document for the location page copy
type LocationContent struct {
	Page          string         `bson:"page" json:"page"`
	Title         string         `bson:"title" json:"title"`
	Intro         string         `bson:"intro" json:"intro"`
	Address       string         `bson:"address" json:"address"`
	Directions    string         `bson:"directions" json:"directions"`
	Image         string         `bson:"image" json:"image"`
	Landmarks     []Landmark     `bson:"landmarks" json:"landmarks"`
	BusinessHours []BusinessHour `bson:"businessHours" json:"businessHours"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// TourRoutesContent is the singleton document for the tour routes page copy
type TourRoutesContent struct {
	Page      string      `bson:"page" json:"page"`
	Title     string      `bson:"title" json:"title"`
	Intro     string      `bson:"intro" json:"intro"`
	HeroImage string      `bson:"heroImage" json:"heroImage"`
	Routes    []TourRoute `bson:"routes" json:"routes"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}
