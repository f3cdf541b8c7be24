package model

// Profile is the local user profile. Coins are earned from streak rewards.
type Profile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Coins        int    `json:"coins"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Settings are user preferences included in the data export.
type Settings struct {
	Theme                string `json:"theme"`
	EmailNotifications   bool   `json:"emailNotifications"`
	DesktopNotifications bool   `json:"desktopNotifications"`
	WeekStart            string `json:"weekStart"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Theme:                "light",
		EmailNotifications:   true,
		DesktopNotifications: true,
		WeekStart:            "monday",
	}
}

// Note is a free-form note.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Journal is a daily journal entry, one per date.
type Journal struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
	Mood    string `json:"mood,omitempty"`
}

// TimerSession records one focus session that produced a calendar event.
type TimerSession struct {
	ID             string `json:"id"`
	Topic          string `json:"topic"`
	StartedAt      int64  `json:"startedAt"`
	EndedAt        int64  `json:"endedAt"`
	PlannedSeconds int    `json:"plannedSeconds"`
	Completed      bool   `json:"completed"`
}

// Skin is a purchasable theme skin.
type Skin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// DefaultSkin is free and always owned.
const DefaultSkin = "default"

// Skins is the shop catalogue.
var Skins = []Skin{
	{ID: DefaultSkin, Name: "Classic", Price: 0},
	{ID: "forest", Name: "Forest", Price: 100},
	{ID: "ocean", Name: "Ocean", Price: 150},
	{ID: "sunset", Name: "Sunset", Price: 200},
	{ID: "midnight", Name: "Midnight", Price: 300},
}

// FindSkin looks a skin up by id.
func FindSkin(id string) (Skin, bool) {
	for _, s := range Skins {
		if s.ID == id {
			return s, true
		}
	}
	return Skin{}, false
}
