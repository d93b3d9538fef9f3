package classify

// DefaultCategories is the closed category vocabulary offered to the
// model. It spans food, retail, electronics, health, home, automotive,
// business, entertainment, finance, education, utilities and travel.
var DefaultCategories = []string{
	// Food & Beverages
	"food_beverages", "grocery", "restaurant", "bakery", "beverages",
	"snacks", "dairy", "meat_seafood", "fruits_vegetables",
	// Retail & Shopping
	"clothing", "shoes", "accessories", "jewelry", "retail",
	"department_store", "specialty_store",
	// Technology & Electronics
	"electronics", "computers", "mobile_phones", "gaming", "software",
	"subscriptions", "digital_services",
	// Health & Personal Care
	"health_beauty", "pharmacy", "medical_supplies", "cosmetics",
	"personal_care", "vitamins_supplements",
	// Home & Living
	"home_garden", "furniture", "appliances", "home_improvement",
	"cleaning_supplies", "kitchenware",
	// Transportation & Automotive
	"automotive", "fuel", "car_parts", "transportation", "parking",
	"car_services",
	// Professional & Business
	"office_supplies", "business_services", "professional_services",
	"consulting", "b2b_supplies",
	// Entertainment & Recreation
	"entertainment", "movies", "music", "books_media", "toys_games",
	"sports_outdoors", "hobbies",
	// Financial & Insurance
	"financial_services", "insurance", "banking_fees", "investment_services",
	// Education & Learning
	"education", "training", "books", "educational_materials", "online_courses",
	// Utilities & Services
	"utilities", "telecommunications", "internet_services",
	"repair_services", "maintenance",
	// Travel & Hospitality
	"travel", "hotels", "flights", "car_rental", "tourism", "accommodation",
	// General
	"services", "other",
}
