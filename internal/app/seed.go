package app

import (
	"fmt"

	"vivaham/internal/logger"
	"vivaham/internal/models"
	"vivaham/internal/repositories"
	"vivaham/internal/services"

	"github.com/sirupsen/logrus"
)

// SamplePassword is the password of every seeded profile.
const SamplePassword = "password123"

func str(s string) *string { return &s }

func sampleUsers() []models.User {
	return []models.User{
		{
			Username: "priya_s", Email: "priya@example.com", Phone: "9876543210",
			FirstName: "Priya", LastName: "Sharma", Gender: "Female", DateOfBirth: "1995-05-15",
			MotherTongue: "Telugu", Religion: "Hindu", Caste: str("Reddy"), MaritalStatus: "Never Married",
			Height: "5'4\"", Education: "MBA, Finance", Profession: "Investment Banker",
			Location:   "Hyderabad, Telangana",
			About:      str("I am a hardworking professional who values family traditions. Looking for a life partner with similar values."),
			ProfilePic: str("https://images.unsplash.com/photo-1596436889106-be35e843f974"),
		},
		{
			Username: "rahul_k", Email: "rahul@example.com", Phone: "9876543211",
			FirstName: "Rahul", LastName: "Kumar", Gender: "Male", DateOfBirth: "1992-08-22",
			MotherTongue: "Telugu", Religion: "Hindu", Caste: str("Kamma"), MaritalStatus: "Never Married",
			Height: "5'11\"", Education: "B.Tech, Computer Science", Profession: "Software Engineer",
			Location:   "Bangalore, Karnataka",
			About:      str("I'm a tech enthusiast who loves to travel. Looking for a partner who shares my interests."),
			ProfilePic: str("https://images.unsplash.com/photo-1589642774083-7677b65606ad"),
		},
		{
			Username: "ananya_m", Email: "ananya@example.com", Phone: "9876543212",
			FirstName: "Ananya", LastName: "Mishra", Gender: "Female", DateOfBirth: "1996-03-10",
			MotherTongue: "Telugu", Religion: "Hindu", Caste: str("Brahmin"), MaritalStatus: "Never Married",
			Height: "5'6\"", Education: "MBBS", Profession: "Doctor",
			Location:   "Chennai, Tamil Nadu",
			About:      str("I'm a dedicated doctor who loves helping others. Looking for someone understanding and supportive."),
			ProfilePic: str("https://images.unsplash.com/photo-1610438235354-a6ae5528385c"),
		},
		{
			Username: "karthik_v", Email: "karthik@example.com", Phone: "9876543213",
			FirstName: "Karthik", LastName: "Venkat", Gender: "Male", DateOfBirth: "1990-11-25",
			MotherTongue: "Telugu", Religion: "Hindu", Caste: str("Naidu"), MaritalStatus: "Never Married",
			Height: "5'10\"", Education: "MBA, Marketing", Profession: "Marketing Manager",
			Location:   "Mumbai, Maharashtra",
			About:      str("I enjoy building brands and creating campaigns. Looking for a life partner who is ambitious and family-oriented."),
			ProfilePic: str("https://images.unsplash.com/photo-1611022574783-366013583738"),
		},
	}
}

// Seed registers the sample profiles and two success stories between them.
// It does nothing if the store already holds users.
func Seed(store *repositories.Store, authService *services.AuthService) error {
	existing, err := store.Users.List()
	if err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if len(existing) > 0 {
		logger.Log.WithField("users", len(existing)).Info("store already populated, skipping seed")
		return nil
	}

	users := sampleUsers()
	for i := range users {
		users[i].Password = SamplePassword
		if err := authService.Register(&users[i]); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", users[i].Username, err)
		}
		logger.Log.WithField("user_id", users[i].ID).Debugf("seeded user %s", users[i].Username)
	}

	stories := []models.SuccessStory{
		{
			User1ID: users[0].ID, User2ID: users[1].ID, MarriageDate: "2022-06-12",
			Story: "We connected on Vivaham Matrimony in March 2021. After getting to know each other for a few months, " +
				"we knew we were meant to be together. Thanks to this platform for bringing us together!",
			Photo: str("https://images.unsplash.com/photo-1494790108377-be9c29b29330"),
		},
		{
			User1ID: users[2].ID, User2ID: users[3].ID, MarriageDate: "2021-11-28",
			Story: "Finding the right person can be challenging, but Vivaham Matrimony made it easy. " +
				"We connected instantly and our families approved. We're grateful for this platform.",
			Photo: str("https://images.unsplash.com/photo-1537633552985-df8429e8048b"),
		},
	}
	for i := range stories {
		if err := store.Stories.Create(&stories[i]); err != nil {
			return fmt.Errorf("failed to seed success story: %w", err)
		}
	}

	logger.Log.WithFields(logrus.Fields{"users": len(users), "stories": len(stories)}).Info("seeded sample data")
	return nil
}
