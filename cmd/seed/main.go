package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forkful/backend/config"
	"github.com/forkful/backend/internal/database"
	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/service"
	"github.com/forkful/backend/internal/types"
)

const seedPassword = "password123"

type seedRating struct {
	rater   string
	value   int
	comment string
}

type seedRecipe struct {
	author  string
	input   types.RecipeInput
	ratings []seedRating
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	recipes := service.NewRecipeService(db)

	for _, seed := range seedRecipes() {
		var count int64
		if err := db.Model(&models.Recipe{}).Where("title = ?", seed.input.Title).Count(&count).Error; err != nil {
			log.Fatalf("Failed to check for existing recipe: %v", err)
		}
		if count > 0 {
			log.Printf("Skipping %q (already seeded)", seed.input.Title)
			continue
		}

		authorID, err := ensureUser(db, seed.author)
		if err != nil {
			log.Fatalf("Failed to create author %s: %v", seed.author, err)
		}

		id, err := recipes.CreateRecipe(ctx, authorID, seed.input)
		if err != nil {
			log.Fatalf("Failed to create recipe %q: %v", seed.input.Title, err)
		}

		for _, r := range seed.ratings {
			raterID, err := ensureUser(db, r.rater)
			if err != nil {
				log.Fatalf("Failed to create rater %s: %v", r.rater, err)
			}
			if err := recipes.RateRecipe(ctx, id, raterID, r.value, r.comment); err != nil {
				log.Fatalf("Failed to rate recipe %q: %v", seed.input.Title, err)
			}
		}

		log.Printf("Seeded %q (%s)", seed.input.Title, id)
	}

	log.Println("Seeding complete")
}

// ensureUser creates a user and profile for the given display name if one
// doesn't already exist, returning the user id either way.
func ensureUser(db *gorm.DB, name string) (uuid.UUID, error) {
	username := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	email := fmt.Sprintf("%s@example.com", username)

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return uuid.Nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Profile{
			UserID:   user.ID,
			Username: username,
			FullName: name,
		}).Error
	})
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

func seedRecipes() []seedRecipe {
	return []seedRecipe{
		{
			author: "Chef Marco",
			input: types.RecipeInput{
				Title:        "Margherita Pizza",
				Description:  "Classic Italian pizza with fresh mozzarella, tomatoes, and basil",
				ImageURL:     "https://images.unsplash.com/photo-1604068549290-dea0e4a305ca?ixlib=rb-4.0.3",
				PrepTime:     20,
				CookTime:     15,
				Servings:     4,
				Difficulty:   types.DifficultyEasy,
				Cuisine:      "Italian",
				DietaryTypes: []string{"Vegetarian"},
				Ingredients: []types.Ingredient{
					{Name: "Pizza dough", Amount: 1, Unit: "ball"},
					{Name: "Fresh mozzarella", Amount: 200, Unit: "g"},
					{Name: "Fresh basil leaves", Amount: 10, Unit: ""},
					{Name: "Tomato sauce", Amount: 100, Unit: "ml"},
					{Name: "Olive oil", Amount: 2, Unit: "tbsp"},
					{Name: "Salt", Amount: 1, Unit: "tsp"},
				},
				Instructions: []string{
					"Preheat your oven to 475°F (245°C) with a pizza stone or steel inside.",
					"Stretch your pizza dough on a floured surface into a 12-inch circle.",
					"Spread tomato sauce evenly across the dough, leaving a small border for the crust.",
					"Tear the mozzarella into pieces and distribute across the pizza.",
					"Bake for 12-15 minutes until the crust is golden and cheese is bubbly.",
					"Remove from oven, top with fresh basil leaves, drizzle with olive oil, and sprinkle with salt.",
				},
			},
			ratings: []seedRating{
				{rater: "User One", value: 5, comment: "Perfect recipe! Just like in Naples."},
				{rater: "User Two", value: 4, comment: "Delicious and simple."},
			},
		},
		{
			author: "Chef Supatra",
			input: types.RecipeInput{
				Title:        "Thai Green Curry",
				Description:  "Aromatic and spicy Thai curry with vegetables and your choice of protein",
				ImageURL:     "https://images.unsplash.com/photo-1455619452474-d2be8b1e70cd?ixlib=rb-4.0.3",
				PrepTime:     25,
				CookTime:     20,
				Servings:     4,
				Difficulty:   types.DifficultyMedium,
				Cuisine:      "Thai",
				DietaryTypes: []string{"Gluten-Free"},
				Ingredients: []types.Ingredient{
					{Name: "Green curry paste", Amount: 2, Unit: "tbsp"},
					{Name: "Coconut milk", Amount: 400, Unit: "ml"},
					{Name: "Chicken breast", Amount: 400, Unit: "g"},
					{Name: "Bell peppers", Amount: 2, Unit: ""},
					{Name: "Thai eggplant", Amount: 100, Unit: "g"},
					{Name: "Thai basil leaves", Amount: 1, Unit: "handful"},
					{Name: "Fish sauce", Amount: 1, Unit: "tbsp"},
					{Name: "Palm sugar", Amount: 1, Unit: "tsp"},
					{Name: "Lime leaves", Amount: 4, Unit: ""},
				},
				Instructions: []string{
					"Heat a tablespoon of oil in a large pan or wok over medium heat.",
					"Add the green curry paste and cook for 1 minute until fragrant.",
					"Add half of the coconut milk and bring to a simmer.",
					"Add chicken and cook for 5 minutes.",
					"Add the vegetables and the remaining coconut milk. Cook for 10 minutes.",
					"Season with fish sauce and palm sugar to taste.",
					"Stir in Thai basil leaves and lime leaves just before serving.",
					"Serve hot with steamed jasmine rice.",
				},
			},
			ratings: []seedRating{
				{rater: "User Three", value: 5, comment: "Tastes like authentic Thai street food!"},
				{rater: "User Four", value: 4, comment: "Delicious but quite spicy."},
				{rater: "User Five", value: 5, comment: "My family loved this recipe."},
			},
		},
		{
			author: "Chef Olivia",
			input: types.RecipeInput{
				Title:        "Vegan Buddha Bowl",
				Description:  "Nourishing bowl packed with colorful vegetables, grains, and plant-based protein",
				ImageURL:     "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?ixlib=rb-4.0.3",
				PrepTime:     20,
				CookTime:     30,
				Servings:     2,
				Difficulty:   types.DifficultyEasy,
				Cuisine:      "Mediterranean",
				DietaryTypes: []string{"Vegan", "Vegetarian", "Dairy-Free"},
				Ingredients: []types.Ingredient{
					{Name: "Quinoa", Amount: 100, Unit: "g"},
					{Name: "Sweet potato", Amount: 1, Unit: "medium"},
					{Name: "Chickpeas", Amount: 400, Unit: "g"},
					{Name: "Avocado", Amount: 1, Unit: ""},
					{Name: "Kale", Amount: 100, Unit: "g"},
					{Name: "Carrots", Amount: 2, Unit: ""},
					{Name: "Tahini", Amount: 2, Unit: "tbsp"},
					{Name: "Lemon juice", Amount: 1, Unit: "tbsp"},
					{Name: "Maple syrup", Amount: 1, Unit: "tsp"},
					{Name: "Sesame seeds", Amount: 1, Unit: "tbsp"},
					{Name: "Olive oil", Amount: 2, Unit: "tbsp"},
					{Name: "Salt", Amount: 1, Unit: "tsp"},
				},
				Instructions: []string{
					"Preheat oven to 400°F (200°C).",
					"Dice sweet potato, toss with olive oil and salt, and roast for 25 minutes.",
					"Rinse chickpeas, toss with spices and olive oil, and roast for 20 minutes until crispy.",
					"Cook quinoa according to package instructions.",
					"Make dressing by whisking together tahini, lemon juice, maple syrup, and water.",
					"Massage kale with olive oil and salt until softened.",
					"Slice carrots and avocado.",
					"Assemble bowls with quinoa as the base, then arrange vegetables, chickpeas, and avocado.",
					"Drizzle with tahini dressing and sprinkle with sesame seeds.",
				},
			},
			ratings: []seedRating{
				{rater: "User Six", value: 5, comment: "So tasty and filling!"},
				{rater: "User Seven", value: 5, comment: "Great balanced meal."},
				{rater: "User Eight", value: 4, comment: "Delicious but took longer to prepare than expected."},
			},
		},
		{
			author: "Chef Pierre",
			input: types.RecipeInput{
				Title:       "Classic Beef Bourguignon",
				Description: "Traditional French beef stew braised in red wine with mushrooms and herbs",
				ImageURL:    "https://images.unsplash.com/photo-1534939561126-855b8675edd7?ixlib=rb-4.0.3",
				PrepTime:    30,
				CookTime:    180,
				Servings:    6,
				Difficulty:  types.DifficultyHard,
				Cuisine:     "French",
				Ingredients: []types.Ingredient{
					{Name: "Beef chuck", Amount: 1.5, Unit: "kg"},
					{Name: "Bacon", Amount: 200, Unit: "g"},
					{Name: "Carrots", Amount: 3, Unit: "large"},
					{Name: "Onions", Amount: 2, Unit: "large"},
					{Name: "Mushrooms", Amount: 500, Unit: "g"},
					{Name: "Red wine", Amount: 750, Unit: "ml"},
					{Name: "Beef stock", Amount: 500, Unit: "ml"},
					{Name: "Tomato paste", Amount: 2, Unit: "tbsp"},
					{Name: "Garlic", Amount: 4, Unit: "cloves"},
					{Name: "Thyme", Amount: 1, Unit: "sprig"},
					{Name: "Bay leaves", Amount: 2, Unit: ""},
					{Name: "Pearl onions", Amount: 12, Unit: "small"},
					{Name: "Butter", Amount: 3, Unit: "tbsp"},
					{Name: "Flour", Amount: 3, Unit: "tbsp"},
				},
				Instructions: []string{
					"Preheat oven to 325°F (165°C).",
					"Cook the bacon in a large Dutch oven over medium heat until crispy. Remove and set aside.",
					"Pat the beef dry and season with salt and pepper. Brown in batches in the bacon fat. Set aside.",
					"In the same pot, sauté the carrots and chopped onions until softened.",
					"Add garlic and cook for 1 minute.",
					"Return the beef and bacon to the pot. Add wine, stock, tomato paste, herbs, and bring to a simmer.",
					"Cover and transfer to the oven. Cook for 2.5-3 hours until the beef is very tender.",
					"While the stew is cooking, sauté mushrooms and pearl onions in butter until browned.",
					"Make a beurre manié by mixing softened butter with flour.",
					"When the stew is done, remove from oven, stir in the beurre manié to thicken.",
					"Add the mushrooms and pearl onions, simmer for 10 more minutes.",
					"Adjust seasoning and serve hot with crusty bread or mashed potatoes.",
				},
			},
			ratings: []seedRating{
				{rater: "User Nine", value: 5, comment: "Worth every minute of cooking time!"},
				{rater: "User Ten", value: 5, comment: "A perfect winter comfort food."},
			},
		},
		{
			author: "Chef Kenji",
			input: types.RecipeInput{
				Title:        "Spicy Tuna Poke Bowl",
				Description:  "Fresh Hawaiian-inspired bowl with marinated tuna, rice, and vegetables",
				ImageURL:     "https://images.unsplash.com/photo-1546069901-d5bfd2cbfb1f?ixlib=rb-4.0.3",
				PrepTime:     20,
				CookTime:     15,
				Servings:     2,
				Difficulty:   types.DifficultyMedium,
				Cuisine:      "Japanese",
				DietaryTypes: []string{"Dairy-Free"},
				Ingredients: []types.Ingredient{
					{Name: "Sushi-grade tuna", Amount: 250, Unit: "g"},
					{Name: "Soy sauce", Amount: 3, Unit: "tbsp"},
					{Name: "Sesame oil", Amount: 1, Unit: "tbsp"},
					{Name: "Sriracha", Amount: 1, Unit: "tbsp"},
					{Name: "Sushi rice", Amount: 200, Unit: "g"},
					{Name: "Rice vinegar", Amount: 1, Unit: "tbsp"},
					{Name: "Sugar", Amount: 1, Unit: "tsp"},
					{Name: "Salt", Amount: 1, Unit: "tsp"},
					{Name: "Cucumber", Amount: 1, Unit: "medium"},
					{Name: "Avocado", Amount: 1, Unit: ""},
					{Name: "Edamame", Amount: 100, Unit: "g"},
					{Name: "Nori sheets", Amount: 2, Unit: ""},
					{Name: "Sesame seeds", Amount: 1, Unit: "tbsp"},
					{Name: "Green onions", Amount: 2, Unit: ""},
				},
				Instructions: []string{
					"Cook sushi rice according to package instructions.",
					"Mix rice vinegar, sugar, and salt. Fold into the cooked rice and let cool.",
					"Cut tuna into 1/2-inch cubes.",
					"Mix soy sauce, sesame oil, and sriracha. Toss the tuna in this sauce.",
					"Dice cucumber and avocado.",
					"Cook edamame according to package instructions.",
					"Cut nori sheets into thin strips.",
					"Assemble bowls with rice as the base, then arrange tuna, cucumber, avocado, and edamame.",
					"Garnish with nori strips, sesame seeds, and sliced green onions.",
				},
			},
			ratings: []seedRating{
				{rater: "User Eleven", value: 5, comment: "So fresh and delicious!"},
				{rater: "User Twelve", value: 4, comment: "Great flavors, but be sure to use very fresh tuna."},
			},
		},
		{
			author: "Chef Sophie",
			input: types.RecipeInput{
				Title:        "Chocolate Lava Cake",
				Description:  "Decadent dessert with a warm, gooey chocolate center",
				ImageURL:     "https://images.unsplash.com/photo-1606313564200-e75d8e3ddc1d?ixlib=rb-4.0.3",
				PrepTime:     15,
				CookTime:     12,
				Servings:     4,
				Difficulty:   types.DifficultyMedium,
				Cuisine:      "French",
				DietaryTypes: []string{"Vegetarian"},
				Ingredients: []types.Ingredient{
					{Name: "Dark chocolate", Amount: 200, Unit: "g"},
					{Name: "Unsalted butter", Amount: 100, Unit: "g"},
					{Name: "Eggs", Amount: 4, Unit: ""},
					{Name: "Egg yolks", Amount: 2, Unit: ""},
					{Name: "Sugar", Amount: 100, Unit: "g"},
					{Name: "Flour", Amount: 2, Unit: "tbsp"},
					{Name: "Vanilla extract", Amount: 1, Unit: "tsp"},
					{Name: "Salt", Amount: 1, Unit: "pinch"},
				},
				Instructions: []string{
					"Preheat oven to 425°F (220°C). Butter and lightly flour four ramekins.",
					"Melt chocolate and butter together over a double boiler or in microwave.",
					"In a separate bowl, whisk together eggs, egg yolks, sugar, and vanilla until pale and fluffy.",
					"Fold the melted chocolate mixture into the egg mixture.",
					"Gently fold in flour and salt until just combined.",
					"Divide batter among the ramekins, filling each about 3/4 full.",
					"Bake for 10-12 minutes, until the sides are firm but the center is still soft.",
					"Let cool for 1 minute, then run a knife around the edges and invert onto dessert plates.",
					"Serve immediately with ice cream or whipped cream if desired.",
				},
			},
			ratings: []seedRating{
				{rater: "User Thirteen", value: 5, comment: "Perfect dessert for date night!"},
				{rater: "User Fourteen", value: 4, comment: "Delicious but watch the baking time carefully."},
				{rater: "User Fifteen", value: 5, comment: "Restaurant quality at home!"},
			},
		},
	}
}
