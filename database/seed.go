package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/lexistream/api/model"
	"github.com/lexistream/api/utils/auth"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedLessons(); err != nil {
		return fmt.Errorf("failed to seed lessons: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user from environment credentials
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     "administrator",
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		DisplayName:  "Administrator",
	}

	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("👤 Admin user created: %s", adminEmail)
	return nil
}

// SeedLessons creates the starter lesson catalog, ten passages per
// difficulty level. Skipped when any lessons already exist.
func (s *Seeder) SeedLessons() error {
	var count int64
	if err := s.db.Model(&model.Lesson{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Lessons already exist, skipping...")
		return nil
	}

	lessons := []model.Lesson{
		// Easy
		{Title: "The Cat and the Hat", Content: "The cat sat on the mat. The hat was red. The cat wore the hat.", Difficulty: model.DifficultyEasy},
		{Title: "A Day at the Park", Content: "Today is a sunny day. We go to the park. We play on the swings. We have fun together.", Difficulty: model.DifficultyEasy},
		{Title: "My Pet Dog", Content: "I have a dog. His name is Max. Max likes to play. We run in the yard. Max is happy.", Difficulty: model.DifficultyEasy},
		{Title: "The Red Ball", Content: "I see a red ball. The ball is big. I can throw the ball. The ball bounces high. I catch the ball.", Difficulty: model.DifficultyEasy},
		{Title: "In the Garden", Content: "The garden has flowers. Flowers are pretty. Bees like flowers. I water the flowers. The garden smells nice.", Difficulty: model.DifficultyEasy},
		{Title: "Breakfast Time", Content: "I eat breakfast. I have eggs and toast. The eggs are hot. I drink orange juice. Breakfast is good.", Difficulty: model.DifficultyEasy},
		{Title: "Going to School", Content: "I go to school. School is fun. I learn new things. I see my friends. School makes me smart.", Difficulty: model.DifficultyEasy},
		{Title: "The Rainbow", Content: "After rain comes a rainbow. The rainbow has many colors. Red, orange, yellow, green, blue. The rainbow is beautiful.", Difficulty: model.DifficultyEasy},
		{Title: "My Family", Content: "I love my family. Mom and Dad are kind. My sister is nice. We eat dinner together. Family is important.", Difficulty: model.DifficultyEasy},
		{Title: "Playing Outside", Content: "I play outside. The sun is bright. I ride my bike. I jump and run. Playing is fun.", Difficulty: model.DifficultyEasy},

		// Medium
		{Title: "The Library Adventure", Content: "Sarah visited the local library every Saturday morning. She loved exploring the shelves filled with books from different genres. Her favorite section was the mystery novels, where she could spend hours reading about detectives solving complex cases.", Difficulty: model.DifficultyMedium},
		{Title: "A Rainy Day Story", Content: "When the rain started pouring, Emma decided to stay indoors and bake cookies with her grandmother. They mixed flour, sugar, and chocolate chips together. The warm cookies filled the house with a delicious aroma that made everyone smile.", Difficulty: model.DifficultyMedium},
		{Title: "The School Project", Content: "Marcus worked diligently on his science project about the solar system. He created colorful models of planets using paper and paint. His teacher was impressed by his creativity and attention to detail.", Difficulty: model.DifficultyMedium},
		{Title: "Weekend Adventure", Content: "Last weekend, my friends and I decided to explore the hiking trail near our town. We packed sandwiches, water bottles, and a camera. The trail was challenging but the view from the top was absolutely breathtaking.", Difficulty: model.DifficultyMedium},
		{Title: "Learning to Cook", Content: "Cooking has become one of my favorite hobbies. I started by following simple recipes from cookbooks. Now I can prepare delicious meals for my family. The kitchen has become my creative space.", Difficulty: model.DifficultyMedium},
		{Title: "The Art Museum", Content: "During our field trip to the art museum, we saw paintings from different time periods. Each artwork told a unique story. Our guide explained the techniques artists used to create these masterpieces.", Difficulty: model.DifficultyMedium},
		{Title: "Volunteer Work", Content: "Every month, I volunteer at the local animal shelter. I help feed the animals and clean their cages. The experience has taught me responsibility and compassion for living creatures.", Difficulty: model.DifficultyMedium},
		{Title: "The Science Fair", Content: "Students from different schools gathered to showcase their science experiments. There were projects about plants, electricity, and even space. The fair encouraged young minds to explore and discover.", Difficulty: model.DifficultyMedium},
		{Title: "A Day at the Beach", Content: "The beach was crowded with families enjoying the sunny weather. Children built sandcastles while adults relaxed under colorful umbrellas. The sound of waves created a peaceful atmosphere.", Difficulty: model.DifficultyMedium},
		{Title: "The Book Club", Content: "Our book club meets every Tuesday evening to discuss the latest novel we've read. We share our thoughts and opinions about the characters and plot. These discussions help us understand different perspectives.", Difficulty: model.DifficultyMedium},

		// Hard
		{Title: "The Scientific Method", Content: "The scientific method is a systematic approach to understanding natural phenomena. Researchers begin by observing a problem, formulating a hypothesis, conducting experiments, analyzing results, and drawing conclusions. This rigorous process ensures that scientific knowledge is reliable and reproducible.", Difficulty: model.DifficultyHard},
		{Title: "Climate Change Impact", Content: "Climate change represents one of the most pressing challenges of our time. Rising global temperatures, caused primarily by greenhouse gas emissions, lead to melting ice caps, rising sea levels, and extreme weather patterns. Addressing this issue requires international cooperation and sustainable practices.", Difficulty: model.DifficultyHard},
		{Title: "Artificial Intelligence Revolution", Content: "Artificial intelligence has transformed numerous industries, from healthcare to transportation. Machine learning algorithms can process vast amounts of data, identify patterns, and make predictions with remarkable accuracy. However, this technological advancement raises important ethical questions about privacy, employment, and decision-making autonomy.", Difficulty: model.DifficultyHard},
		{Title: "Economic Globalization", Content: "Economic globalization has created interconnected markets where goods, services, and capital flow across borders with unprecedented ease. While this integration has lifted millions out of poverty and fostered innovation, it has also created economic disparities and cultural homogenization that challenge traditional values and local economies.", Difficulty: model.DifficultyHard},
		{Title: "Renewable Energy Transition", Content: "The transition to renewable energy sources represents a fundamental shift in how humanity generates power. Solar and wind technologies have become increasingly cost-effective, challenging the dominance of fossil fuels. This transformation requires substantial infrastructure investment, policy support, and public acceptance to achieve sustainable energy independence.", Difficulty: model.DifficultyHard},
		{Title: "The Digital Age", Content: "The digital age has revolutionized communication, education, and commerce. Social media platforms connect billions of people worldwide, while e-commerce has transformed retail. However, this digital transformation also presents challenges including cybersecurity threats, information overload, and the digital divide between those with and without access to technology.", Difficulty: model.DifficultyHard},
		{Title: "Biodiversity Conservation", Content: "Biodiversity conservation is essential for maintaining ecosystem stability and human survival. Habitat destruction, pollution, and climate change threaten countless species. Conservation efforts require coordinated action between governments, organizations, and communities to protect endangered species and preserve natural habitats for future generations.", Difficulty: model.DifficultyHard},
		{Title: "Space Exploration", Content: "Space exploration has expanded humanity's understanding of the universe and our place within it. Missions to Mars, asteroid mining, and the search for exoplanets represent ambitious endeavors that push technological boundaries. These ventures inspire scientific curiosity while raising questions about resource allocation and international cooperation.", Difficulty: model.DifficultyHard},
		{Title: "Quantum Computing", Content: "Quantum computing harnesses the principles of quantum mechanics to process information in fundamentally different ways than classical computers. Quantum bits, or qubits, can exist in multiple states simultaneously, potentially solving complex problems exponentially faster. This emerging technology promises breakthroughs in cryptography, drug discovery, and optimization problems.", Difficulty: model.DifficultyHard},
		{Title: "Social Media Influence", Content: "Social media platforms have become powerful tools for information dissemination and social connection. They enable rapid communication and community building across geographical boundaries. However, these platforms also facilitate the spread of misinformation, create echo chambers, and raise concerns about mental health and privacy in the digital age.", Difficulty: model.DifficultyHard},
	}

	if err := s.db.Create(&lessons).Error; err != nil {
		return err
	}

	log.Printf("📚 Seeded %d lessons", len(lessons))
	return nil
}
