package user

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreatorType classifies what kind of creator an account belongs to.
type CreatorType string

const (
	CreatorArtist         CreatorType = "artist"
	CreatorProducer       CreatorType = "producer"
	CreatorDJ             CreatorType = "dj"
	CreatorContentCreator CreatorType = "content-creator"
	CreatorFan            CreatorType = "fan"
)

const (
	MaxBioLength = 500
	MinAge       = 13
	MaxAge       = 120
)

var (
	ErrInvalidCreatorType = errors.New("invalid creator type")
	ErrBioTooLong         = errors.New("bio exceeds 500 characters")
	ErrAgeOutOfRange      = errors.New("age must be between 13 and 120")
)

// User is the account document persisted in the users collection.
// Password holds the bcrypt hash and is never serialized to clients.
type User struct {
	ID          primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Email       string             `json:"email" bson:"email"`
	Password    string             `json:"-" bson:"password"`
	Name        string             `json:"name" bson:"name"`
	CreatorType CreatorType        `json:"creatorType" bson:"creator_type"`
	Bio         string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Age         int                `json:"age,omitempty" bson:"age,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Profile is the public projection of a user returned by the API.
type Profile struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	CreatorType CreatorType `json:"creatorType"`
	Bio         string      `json:"bio,omitempty"`
	Age         int         `json:"age,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Profile strips credential material from the document.
func (u User) Profile() Profile {
	return Profile{
		ID:          u.ID.Hex(),
		Email:       u.Email,
		Name:        u.Name,
		CreatorType: u.CreatorType,
		Bio:         u.Bio,
		Age:         u.Age,
		CreatedAt:   u.CreatedAt,
	}
}

// ParseCreatorType validates the enumerated creator type.
func ParseCreatorType(raw string) (CreatorType, error) {
	switch CreatorType(strings.ToLower(strings.TrimSpace(raw))) {
	case CreatorArtist:
		return CreatorArtist, nil
	case CreatorProducer:
		return CreatorProducer, nil
	case CreatorDJ:
		return CreatorDJ, nil
	case CreatorContentCreator:
		return CreatorContentCreator, nil
	case CreatorFan:
		return CreatorFan, nil
	default:
		return "", ErrInvalidCreatorType
	}
}

// ValidateBio enforces the bounded bio length.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return ErrBioTooLong
	}
	return nil
}

// ValidateAge enforces the bounded age. Zero means unset and is accepted.
func ValidateAge(age int) error {
	if age == 0 {
		return nil
	}
	if age < MinAge || age > MaxAge {
		return ErrAgeOutOfRange
	}
	return nil
}
