package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Negp05/twittor-listas/internal/config"
	"github.com/Negp05/twittor-listas/internal/database"
	"github.com/Negp05/twittor-listas/internal/models"
)

var topics = []string{
	"Go", "Gin", "Gorm", "Docker", "API", "Cloud", "GPU", "OpenSource",
	"Dev", "Startups", "Data", "Vision", "NLP", "MachineLearning",
}

var phrases = []string{
	"Probando Twittor 🎉",
	"Hoy aprendí algo nuevo sobre %s.",
	"¿Alguien recomienda recursos de %s?",
	"Trabajando en un proyecto de %s 🚀",
	"¡Buenos días! #productividad",
	"Pequeño experimento con %s.",
	"¿Qué opinan de %s?",
}

func main() {
	usersN := flag.Int("users", 25, "number of demo users to create")
	tweetsN := flag.Int("tweets", 150, "number of base tweets to create (excludes retweets/quotes)")
	fresh := flag.Bool("fresh", false, "delete existing data before seeding")
	password := flag.String("password", "demo12345", "password for all demo users")
	retweetRatio := flag.Float64("retweet-ratio", 0.15, "retweets as a fraction of base tweets")
	quoteRatio := flag.Float64("quote-ratio", 0.10, "quotes as a fraction of base tweets")
	likeFactor := flag.Float64("like-factor", 0.25, "fraction of users that may like each tweet")
	commentFactor := flag.Float64("comment-factor", 0.20, "fraction of tweets that receive comments")
	flag.Parse()

	config.LoadConfig()
	database.Connect(config.AppConfig.DatabaseURL)
	db := database.DB

	rng := rand.New(rand.NewSource(42))

	if *fresh {
		log.Println("Deleting existing data...")
		for _, table := range []string{
			"likes", "comments", "notifications", "list_members", "collection_tweets",
			"tweets", "drafts", "lists", "collections", "follows", "profiles", "users",
		} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				log.Fatalf("wipe %s: %v", table, err)
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	log.Println("Creating users...")
	users := make([]models.User, 0, *usersN)
	for i := 1; i <= *usersN; i++ {
		u := models.User{
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Role:         "user",
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatalf("create user: %v", err)
		}
		profile := models.Profile{
			UserID:    u.ID,
			Bio:       fmt.Sprintf("Cuenta de demostración de %s", u.Username),
			AvatarRef: "avatars/" + uuid.NewString() + ".png",
		}
		if err := db.Create(&profile).Error; err != nil {
			log.Fatalf("create profile: %v", err)
		}
		users = append(users, u)
	}
	log.Printf("Users created: %d (pass: %s)", len(users), *password)

	log.Println("Creating follows...")
	for _, u := range users {
		k := len(users) / 5
		if k < 3 {
			k = 3
		}
		for _, v := range pickUsers(rng, users, k) {
			if v.ID == u.ID {
				continue
			}
			follow := models.Follow{FollowerID: u.ID, FollowingID: v.ID}
			db.Where(models.Follow{FollowerID: u.ID, FollowingID: v.ID}).FirstOrCreate(&follow)
		}
	}

	log.Println("Creating tweets...")
	tweets := make([]models.Tweet, 0, *tweetsN)
	for i := 0; i < *tweetsN; i++ {
		author := users[rng.Intn(len(users))]
		tw := models.Tweet{AuthorID: author.ID, Content: randomContent(rng, users)}
		if rng.Float64() < 0.15 {
			tw.ImageRef = "tweets/" + uuid.NewString() + ".png"
		}
		if err := db.Create(&tw).Error; err != nil {
			log.Fatalf("create tweet: %v", err)
		}
		tweets = append(tweets, tw)
	}
	log.Printf("Base tweets: %d", len(tweets))

	log.Println("Creating retweets...")
	for i := 0; i < int(float64(len(tweets))**retweetRatio); i++ {
		base := tweets[rng.Intn(len(tweets))]
		actor := users[rng.Intn(len(users))]
		if actor.ID == base.AuthorID {
			continue
		}
		var existing int64
		db.Model(&models.Tweet{}).
			Where("author_id = ? AND parent_id = ? AND is_retweet = ?", actor.ID, base.ID, true).
			Count(&existing)
		if existing > 0 {
			continue
		}
		rt := models.Tweet{AuthorID: actor.ID, ParentID: &base.ID, IsRetweet: true}
		if err := db.Create(&rt).Error; err != nil {
			log.Fatalf("create retweet: %v", err)
		}
		notify(db, actor.ID, base.AuthorID, models.VerbRetweeted, &base.ID)
	}

	log.Println("Creating quotes...")
	for i := 0; i < int(float64(len(tweets))**quoteRatio); i++ {
		base := tweets[rng.Intn(len(tweets))]
		actor := users[rng.Intn(len(users))]
		if actor.ID == base.AuthorID {
			continue
		}
		q := models.Tweet{
			AuthorID: actor.ID,
			ParentID: &base.ID,
			Content:  "Mi opinión: " + randomContent(rng, users),
		}
		if err := db.Create(&q).Error; err != nil {
			log.Fatalf("create quote: %v", err)
		}
		notify(db, actor.ID, base.AuthorID, models.VerbQuoted, &base.ID)
	}

	log.Println("Adding likes...")
	for _, tw := range tweets {
		k := int(float64(len(users)) * *likeFactor * rng.Float64())
		for _, u := range pickUsers(rng, users, k) {
			if u.ID == tw.AuthorID {
				continue
			}
			like := models.Like{UserID: u.ID, TweetID: tw.ID}
			res := db.Where(models.Like{UserID: u.ID, TweetID: tw.ID}).FirstOrCreate(&like)
			if res.Error == nil && res.RowsAffected > 0 {
				notify(db, u.ID, tw.AuthorID, models.VerbLiked, &tw.ID)
			}
		}
	}

	log.Println("Creating comments...")
	for _, tw := range tweets {
		if rng.Float64() >= *commentFactor {
			continue
		}
		for i := 0; i < 1+rng.Intn(3); i++ {
			author := users[rng.Intn(len(users))]
			comment := models.Comment{
				UserID:  author.ID,
				TweetID: tw.ID,
				Content: fmt.Sprintf("Interesante. Sobre %s, yo vi algo similar.", topics[rng.Intn(len(topics))]),
			}
			if err := db.Create(&comment).Error; err != nil {
				log.Fatalf("create comment: %v", err)
			}
			if author.ID != tw.AuthorID {
				notify(db, author.ID, tw.AuthorID, models.VerbCommented, &tw.ID)
			}
		}
	}

	log.Println("Seeding completed ✅")
}

func randomContent(rng *rand.Rand, users []models.User) string {
	phrase := phrases[rng.Intn(len(phrases))]
	topic := topics[rng.Intn(len(topics))]
	text := phrase
	if strings.Contains(phrase, "%s") {
		text = fmt.Sprintf(phrase, topic)
	}
	text += " #" + topics[rng.Intn(len(topics))]
	if rng.Float64() < 0.25 {
		text += " @" + users[rng.Intn(len(users))].Username
	}
	return text
}

func pickUsers(rng *rand.Rand, users []models.User, k int) []models.User {
	if k > len(users) {
		k = len(users)
	}
	perm := rng.Perm(len(users))
	picked := make([]models.User, 0, k)
	for _, idx := range perm[:k] {
		picked = append(picked, users[idx])
	}
	return picked
}

func notify(db *gorm.DB, actorID, recipientID uint, verb string, tweetID *uint) {
	if actorID == recipientID {
		return
	}
	n := models.Notification{
		ActorID:     actorID,
		RecipientID: recipientID,
		Verb:        verb,
		TweetID:     tweetID,
	}
	if err := db.Create(&n).Error; err != nil {
		log.Fatalf("create notification: %v", err)
	}
}
