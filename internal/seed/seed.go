// Package seed loads the demo storefront fixtures: catalog, users,
// a handful of historical orders and their reviews.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/demo-018/indiveg-hub/pkg/db"
	"github.com/demo-018/indiveg-hub/pkg/db/models"
	"github.com/demo-018/indiveg-hub/pkg/enums"
	"github.com/demo-018/indiveg-hub/pkg/logger"
	"github.com/demo-018/indiveg-hub/pkg/security"
	"github.com/demo-018/indiveg-hub/pkg/types"
)

const (
	DemoMobile   = "9876543210"
	DemoPassword = "demo123"
	AdminMobile  = "9999999999"
)

type Seeder struct {
	client *db.Client
	hasher *security.Hasher
	log    *logger.Logger
}

func New(client *db.Client, hasher *security.Hasher, log *logger.Logger) (*Seeder, error) {
	if client == nil || hasher == nil || log == nil {
		return nil, errors.New("seed: client, hasher and logger are required")
	}
	return &Seeder{client: client, hasher: hasher, log: log}, nil
}

// Run is idempotent: it does nothing when the catalog is already present.
func (s *Seeder) Run(ctx context.Context) error {
	var count int64
	if err := s.client.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("check seed state: %w", err)
	}
	if count > 0 {
		s.log.Debug(ctx, "seed skipped, catalog already present")
		return nil
	}

	passwordHash, err := s.hasher.Hash(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	return s.client.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(categories()).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		if err := tx.Create(products()).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}

		users, addresses := usersAndAddresses(passwordHash)
		if err := tx.Create(users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if err := tx.Create(addresses).Error; err != nil {
			return fmt.Errorf("seed addresses: %w", err)
		}

		rajesh := users[0]
		orders, items := ordersAndItems(rajesh.ID, addresses[0])
		if err := tx.Create(orders).Error; err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
		if err := tx.Create(items).Error; err != nil {
			return fmt.Errorf("seed order items: %w", err)
		}
		if err := tx.Create(reviews()).Error; err != nil {
			return fmt.Errorf("seed reviews: %w", err)
		}

		s.log.Info(ctx, "demo data seeded")
		return nil
	})
}

func categories() []models.Category {
	return []models.Category{
		{
			ID:          "leafy-greens",
			Name:        "Leafy Greens",
			HindiName:   "हरी पत्तेदार सब्जियां",
			Description: "Fresh and nutritious leafy vegetables",
			ImageURL:    "/assets/leafy-greens.jpg",
			Position:    1,
		},
		{
			ID:          "fresh-vegetables",
			Name:        "Fresh Vegetables",
			HindiName:   "ताजी सब्जियां",
			Description: "Daily fresh vegetables for your kitchen",
			ImageURL:    "/assets/fresh-vegetables.jpg",
			Position:    2,
		},
		{
			ID:          "spices-herbs",
			Name:        "Spices & Herbs",
			HindiName:   "मसाले और जड़ी-बूटियां",
			Description: "Authentic Indian spices and herbs",
			ImageURL:    "/assets/spices-herbs.jpg",
			Position:    3,
		},
	}
}

func products() []models.Product {
	kg := func(minRupees, maxRupees int64) (decimal.Decimal, decimal.Decimal) {
		return decimal.NewFromInt(minRupees), decimal.NewFromInt(maxRupees)
	}
	halfKilo := decimal.NewFromFloat(0.5)
	tenKilos := decimal.NewFromInt(10)

	type nutritionFacts struct {
		calories              int
		protein, carbs, fiber float64
	}
	nutrition := func(calories int, protein, carbs, fiber float64) nutritionFacts {
		return nutritionFacts{calories, protein, carbs, fiber}
	}

	weight := func(position int, id, name, hindi, categoryID, description, longDesc, image string,
		minRupees, maxRupees int64, facts nutritionFacts, stockKilos int64,
		benefits, vitamins, tags []string) models.Product {
		minPrice, maxPrice := kg(minRupees, maxRupees)
		return models.Product{
			ID:           id,
			Name:         name,
			HindiName:    hindi,
			CategoryID:   categoryID,
			Description:  description,
			LongDesc:     longDesc,
			MinPrice:     minPrice,
			MaxPrice:     maxPrice,
			Unit:         "kg",
			QuantityType: enums.QuantityWeight,
			StepSize:     halfKilo,
			MinQuantity:  halfKilo,
			MaxQuantity:  tenKilos,
			ImageURL:     image,
			Benefits:     pq.StringArray(benefits),
			Vitamins:     pq.StringArray(vitamins),
			Tags:         pq.StringArray(tags),
			Calories:     facts.calories,
			Protein:      decimal.NewFromFloat(facts.protein),
			Carbs:        decimal.NewFromFloat(facts.carbs),
			Fiber:        decimal.NewFromFloat(facts.fiber),
			StockQty:     decimal.NewFromInt(stockKilos),
			InStock:      true,
			Position:     position,
		}
	}

	return []models.Product{
		weight(1, "spinach", "Fresh Spinach", "पालक", "leafy-greens",
			"Fresh organic spinach leaves, rich in iron and vitamins",
			"Our premium quality spinach is sourced directly from local organic farms. Rich in iron, folate, and vitamins A, C, and K. Perfect for making delicious palak paneer, dal palak, or healthy smoothies. Each bunch is carefully handpicked to ensure maximum freshness and nutritional value.",
			"/assets/leafy-greens.jpg", 20, 25, nutrition(23, 2.9, 3.6, 2.2), 50,
			[]string{"High in Iron", "Rich in Vitamins A, C, K", "Good for Eyes", "Boosts Immunity", "Supports Bone Health"},
			[]string{"Vitamin A", "Vitamin C", "Vitamin K", "Folate", "Iron"},
			[]string{"organic", "fresh", "iron-rich", "healthy"}),
		weight(2, "coriander", "Fresh Coriander", "धनिया", "leafy-greens",
			"Fresh coriander leaves for garnishing and cooking",
			"Fresh, aromatic coriander leaves perfect for garnishing curries, making chutneys, and adding that distinctive flavor to your dishes. Our coriander is grown in clean, pesticide-free farms and delivered fresh to maintain its vibrant green color and intense aroma.",
			"/assets/leafy-greens.jpg", 30, 40, nutrition(23, 2.1, 3.7, 2.8), 30,
			[]string{"Aids Digestion", "Rich in Antioxidants", "Anti-inflammatory", "Freshens Breath"},
			[]string{"Vitamin A", "Vitamin C", "Vitamin K"},
			[]string{"fresh", "aromatic", "garnish", "herbs"}),
		weight(3, "tomato", "Fresh Tomatoes", "टमाटर", "fresh-vegetables",
			"Fresh red tomatoes, perfect for cooking and salads",
			"Juicy, vine-ripened tomatoes with perfect balance of sweetness and acidity. Ideal for making curries, salads, sauces, and soups. Our tomatoes are carefully selected for their firmness, color, and flavor. Rich in lycopene, an antioxidant that may help protect against heart disease and cancer.",
			"/assets/fresh-vegetables.jpg", 30, 40, nutrition(18, 0.9, 3.9, 1.2), 100,
			[]string{"Rich in Lycopene", "High in Vitamin C", "Good for Heart", "Cancer Prevention", "Skin Health"},
			[]string{"Vitamin C", "Lycopene", "Potassium", "Folate"},
			[]string{"fresh", "juicy", "vitamin-c", "antioxidant"}),
		weight(4, "onion", "Red Onions", "प्याज", "fresh-vegetables",
			"Fresh red onions, essential for Indian cooking",
			"Premium quality red onions with strong flavor and excellent storage life. These onions are perfect for all types of Indian cooking - from tempering to main dishes. Known for their sharp taste and beautiful purple-red color, they add depth and flavor to any dish.",
			"/assets/fresh-vegetables.jpg", 25, 35, nutrition(40, 1.1, 9.3, 1.7), 200,
			[]string{"Rich in Antioxidants", "Anti-inflammatory", "Heart Healthy", "Immunity Booster"},
			[]string{"Vitamin C", "Folate", "Potassium"},
			[]string{"essential", "flavorful", "long-lasting", "cooking-base"}),
		weight(5, "green-chili", "Green Chilies", "हरी मिर्च", "fresh-vegetables",
			"Fresh green chilies for that perfect spice",
			"Fresh, crisp green chilies with the perfect amount of heat. Essential for Indian cooking, these chilies add both flavor and spice to your dishes. Rich in vitamin C and capsaicin, which has numerous health benefits including boosting metabolism and providing natural pain relief.",
			"/assets/fresh-vegetables.jpg", 80, 120, nutrition(40, 1.9, 7.3, 1.5), 25,
			[]string{"Boosts Metabolism", "Rich in Vitamin C", "Natural Pain Relief", "Anti-inflammatory"},
			[]string{"Vitamin C", "Vitamin A", "Capsaicin"},
			[]string{"spicy", "vitamin-c", "metabolism", "fresh"}),
		weight(6, "potato", "Fresh Potatoes", "आलू", "fresh-vegetables",
			"Fresh potatoes, versatile vegetable for all dishes",
			"Premium quality potatoes perfect for all cooking methods - boiling, frying, baking, or making curries. These potatoes have excellent texture and taste, with thin skin and creamy flesh. Rich in potassium, vitamin C, and healthy carbohydrates.",
			"/assets/fresh-vegetables.jpg", 20, 30, nutrition(77, 2.0, 17.6, 2.1), 150,
			[]string{"High in Potassium", "Good Carbs", "Vitamin C", "Energy Source", "Versatile"},
			[]string{"Vitamin C", "Potassium", "Vitamin B6"},
			[]string{"versatile", "staple", "energy", "comfort-food"}),
	}
}

func usersAndAddresses(passwordHash string) ([]models.User, []models.Address) {
	rajeshID := uuid.MustParse("a1a1a1a1-0000-4000-8000-000000000001")
	priyaID := uuid.MustParse("a1a1a1a1-0000-4000-8000-000000000002")
	adminID := uuid.MustParse("a1a1a1a1-0000-4000-8000-00000000000a")

	users := []models.User{
		{
			ID:           rajeshID,
			Name:         "Rajesh Kumar",
			Mobile:       DemoMobile,
			Email:        "rajesh@email.com",
			PasswordHash: passwordHash,
			Role:         enums.RoleCustomer,
		},
		{
			ID:           priyaID,
			Name:         "Priya Sharma",
			Mobile:       "9876543211",
			Email:        "priya@email.com",
			PasswordHash: passwordHash,
			Role:         enums.RoleCustomer,
		},
		{
			ID:           adminID,
			Name:         "Store Admin",
			Mobile:       AdminMobile,
			Email:        "admin@indiveg.example",
			PasswordHash: passwordHash,
			Role:         enums.RoleAdmin,
		},
	}

	addresses := []models.Address{
		{
			ID:        uuid.MustParse("b2b2b2b2-0000-4000-8000-000000000001"),
			UserID:    rajeshID,
			Label:     "Home",
			Street:    "123 MG Road",
			Area:      "Connaught Place",
			City:      "New Delhi",
			State:     "Delhi",
			Pincode:   "110001",
			IsDefault: true,
		},
		{
			ID:        uuid.MustParse("b2b2b2b2-0000-4000-8000-000000000002"),
			UserID:    priyaID,
			Label:     "Home",
			Street:    "456 Brigade Road",
			Area:      "Commercial Street",
			City:      "Bangalore",
			State:     "Karnataka",
			Pincode:   "560001",
			IsDefault: true,
		},
	}

	return users, addresses
}

func ordersAndItems(userID uuid.UUID, addr models.Address) ([]models.Order, []models.OrderItem) {
	snapshot := types.AddressSnapshot{
		Label:   addr.Label,
		Street:  addr.Street,
		Area:    addr.Area,
		City:    addr.City,
		State:   addr.State,
		Pincode: addr.Pincode,
	}
	day := func(offset int) time.Time {
		return time.Now().UTC().AddDate(0, 0, offset).Truncate(24 * time.Hour)
	}
	rupees := decimal.NewFromInt
	packedActual := rupees(110)
	deliveredActual := rupees(70)

	placedID := uuid.MustParse("c3c3c3c3-0000-4000-8000-000000000001")
	packedID := uuid.MustParse("c3c3c3c3-0000-4000-8000-000000000002")
	deliveredID := uuid.MustParse("c3c3c3c3-0000-4000-8000-000000000003")

	orders := []models.Order{
		{
			ID:              placedID,
			UserID:          userID,
			Status:          enums.OrderPlaced,
			SubtotalMin:     rupees(70),
			SubtotalMax:     rupees(90),
			DeliveryFee:     rupees(20),
			Total:           rupees(110),
			ContactMobile:   DemoMobile,
			DeliveryAddress: snapshot,
			DeliveryDate:    day(2),
			PlacedAt:        day(0).Add(-2 * time.Hour),
		},
		{
			ID:              packedID,
			UserID:          userID,
			Status:          enums.OrderPacked,
			SubtotalMin:     rupees(75),
			SubtotalMax:     rupees(105),
			DeliveryFee:     rupees(20),
			Total:           rupees(110),
			ActualTotal:     &packedActual,
			ContactMobile:   DemoMobile,
			DeliveryAddress: snapshot,
			DeliveryDate:    day(1),
			PlacedAt:        day(-1),
		},
		{
			ID:              deliveredID,
			UserID:          userID,
			Status:          enums.OrderDelivered,
			SubtotalMin:     rupees(40),
			SubtotalMax:     rupees(60),
			DeliveryFee:     rupees(20),
			Total:           rupees(70),
			ActualTotal:     &deliveredActual,
			ContactMobile:   DemoMobile,
			DeliveryAddress: snapshot,
			DeliveryDate:    day(-2),
			PlacedAt:        day(-4),
		},
	}

	items := []models.OrderItem{
		{
			ID:           uuid.MustParse("d4d4d4d4-0000-4000-8000-000000000001"),
			OrderID:      placedID,
			ProductID:    "spinach",
			Name:         "Fresh Spinach",
			HindiName:    "पालक",
			Unit:         "kg",
			Quantity:     decimal.NewFromInt(2),
			EstimatedMin: rupees(40),
			EstimatedMax: rupees(50),
			PriceAtOrder: decimal.Zero,
		},
		{
			ID:           uuid.MustParse("d4d4d4d4-0000-4000-8000-000000000002"),
			OrderID:      placedID,
			ProductID:    "tomato",
			Name:         "Fresh Tomatoes",
			HindiName:    "टमाटर",
			Unit:         "kg",
			Quantity:     decimal.NewFromInt(1),
			EstimatedMin: rupees(30),
			EstimatedMax: rupees(40),
			PriceAtOrder: decimal.Zero,
		},
		{
			ID:           uuid.MustParse("d4d4d4d4-0000-4000-8000-000000000003"),
			OrderID:      packedID,
			ProductID:    "onion",
			Name:         "Red Onions",
			HindiName:    "प्याज",
			Unit:         "kg",
			Quantity:     decimal.NewFromInt(3),
			EstimatedMin: rupees(75),
			EstimatedMax: rupees(105),
			PriceAtOrder: rupees(30),
		},
		{
			ID:           uuid.MustParse("d4d4d4d4-0000-4000-8000-000000000004"),
			OrderID:      deliveredID,
			ProductID:    "green-chili",
			Name:         "Green Chilies",
			HindiName:    "हरी मिर्च",
			Unit:         "kg",
			Quantity:     decimal.NewFromFloat(0.5),
			EstimatedMin: rupees(40),
			EstimatedMax: rupees(60),
			PriceAtOrder: rupees(100),
		},
	}

	return orders, items
}

func reviews() []models.Review {
	rajeshID := uuid.MustParse("a1a1a1a1-0000-4000-8000-000000000001")
	priyaID := uuid.MustParse("a1a1a1a1-0000-4000-8000-000000000002")
	packedOrderID := uuid.MustParse("c3c3c3c3-0000-4000-8000-000000000002")
	deliveredOrderID := uuid.MustParse("c3c3c3c3-0000-4000-8000-000000000003")

	return []models.Review{
		{
			ID:        uuid.MustParse("e5e5e5e5-0000-4000-8000-000000000001"),
			ProductID: "spinach",
			UserID:    rajeshID,
			OrderID:   &deliveredOrderID,
			UserName:  "Rajesh K.",
			Rating:    5,
			Comment:   "Excellent quality spinach! Very fresh and clean. Will order again.",
		},
		{
			ID:        uuid.MustParse("e5e5e5e5-0000-4000-8000-000000000002"),
			ProductID: "tomato",
			UserID:    priyaID,
			UserName:  "Priya S.",
			Rating:    4,
			Comment:   "Good quality tomatoes, perfect for making curry. Fast delivery too!",
		},
		{
			ID:        uuid.MustParse("e5e5e5e5-0000-4000-8000-000000000003"),
			ProductID: "onion",
			UserID:    rajeshID,
			OrderID:   &packedOrderID,
			UserName:  "Rajesh K.",
			Rating:    4,
			Comment:   "Fresh onions with good shelf life. Pricing is reasonable.",
		},
	}
}
