package domain

import "time"

type BackgroundType string

const (
	BackgroundBlur  BackgroundType = "blur"
	BackgroundImage BackgroundType = "image"
)

const CategoryCustom = "custom"

type Background struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Type      BackgroundType `json:"type"`
	URL       string         `json:"url,omitempty"`
	Category  string         `json:"category"`
	Intensity int            `json:"intensity,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`

	ContentType string `json:"-"`
	Data        []byte `json:"-"`
}

func (b Background) IsCustom() bool { return b.Category == CategoryCustom }

var presetsCreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// PresetBackgrounds — встроенный каталог, удалять его элементы нельзя.
func PresetBackgrounds() []Background {
	return []Background{
		{ID: 1, Name: "Blur Effect", Type: BackgroundBlur, Category: "effect", Intensity: 5, CreatedAt: presetsCreatedAt},
		{ID: 2, Name: "Office Space", Type: BackgroundImage, Category: "office", CreatedAt: presetsCreatedAt,
			URL: "https://images.unsplash.com/photo-1497366216548-37526070297c?w=800&h=600&fit=crop"},
		{ID: 3, Name: "Modern Library", Type: BackgroundImage, Category: "office", CreatedAt: presetsCreatedAt,
			URL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=800&h=600&fit=crop"},
		{ID: 4, Name: "Living Room", Type: BackgroundImage, Category: "home", CreatedAt: presetsCreatedAt,
			URL: "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=800&h=600&fit=crop"},
		{ID: 5, Name: "City View", Type: BackgroundImage, Category: "nature", CreatedAt: presetsCreatedAt,
			URL: "https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=800&h=600&fit=crop"},
		{ID: 6, Name: "Beach Sunset", Type: BackgroundImage, Category: "nature", CreatedAt: presetsCreatedAt,
			URL: "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=800&h=600&fit=crop"},
		{ID: 7, Name: "Mountain View", Type: BackgroundImage, Category: "nature", CreatedAt: presetsCreatedAt,
			URL: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&h=600&fit=crop"},
		{ID: 8, Name: "Abstract Blue", Type: BackgroundImage, Category: "abstract", CreatedAt: presetsCreatedAt,
			URL: "https://images.unsplash.com/photo-1557672172-298e090bd0f1?w=800&h=600&fit=crop"},
	}
}
