package domain

import "fmt"

// NotificationSettings controls which notifications a client receives.
type NotificationSettings struct {
	RemedyReminders  bool `json:"remedyReminders"`
	HealthTips       bool `json:"healthTips"`
	NewRemedies      bool `json:"newRemedies"`
	CommunityUpdates bool `json:"communityUpdates"`
}

// PrivacySettings holds profile visibility and sharing choices.
type PrivacySettings struct {
	ProfileVisibility bool `json:"profileVisibility"`
	DataSharing       bool `json:"dataSharing"`
	TwoFactorAuth     bool `json:"twoFactorAuth"`
}

// AppPreferences holds client-side presentation toggles.
type AppPreferences struct {
	DarkMode          bool `json:"darkMode"`
	AutoSaveFavorites bool `json:"autoSaveFavorites"`
	OfflineMode       bool `json:"offlineMode"`
}

// Settings is the full per-client settings record.
type Settings struct {
	Notifications  NotificationSettings `json:"notifications"`
	Privacy        PrivacySettings      `json:"privacy"`
	AppPreferences AppPreferences       `json:"appPreferences"`
}

// DefaultSettings returns the record a new client starts with.
func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{
			RemedyReminders:  true,
			HealthTips:       true,
			NewRemedies:      false,
			CommunityUpdates: true,
		},
		Privacy: PrivacySettings{
			ProfileVisibility: true,
			DataSharing:       false,
			TwoFactorAuth:     false,
		},
		AppPreferences: AppPreferences{
			DarkMode:          true,
			AutoSaveFavorites: true,
			OfflineMode:       false,
		},
	}
}

// SettingKey names a single boolean setting.
type SettingKey int

const (
	SettingRemedyReminders SettingKey = iota + 1
	SettingHealthTips
	SettingNewRemedies
	SettingCommunityUpdates
	SettingProfileVisibility
	SettingDataSharing
	SettingTwoFactorAuth
	SettingDarkMode
	SettingAutoSaveFavorites
	SettingOfflineMode
)

var settingNames = map[SettingKey]string{
	SettingRemedyReminders:   "notifications.remedyReminders",
	SettingHealthTips:        "notifications.healthTips",
	SettingNewRemedies:       "notifications.newRemedies",
	SettingCommunityUpdates:  "notifications.communityUpdates",
	SettingProfileVisibility: "privacy.profileVisibility",
	SettingDataSharing:       "privacy.dataSharing",
	SettingTwoFactorAuth:     "privacy.twoFactorAuth",
	SettingDarkMode:          "appPreferences.darkMode",
	SettingAutoSaveFavorites: "appPreferences.autoSaveFavorites",
	SettingOfflineMode:       "appPreferences.offlineMode",
}

func (k SettingKey) String() string {
	if s, ok := settingNames[k]; ok {
		return s
	}
	return fmt.Sprintf("SettingKey(%d)", int(k))
}

// ParseSettingKey resolves the dotted wire name ("privacy.dataSharing") of a setting.
func ParseSettingKey(s string) (SettingKey, error) {
	for k, name := range settingNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown setting %q", s)
}

// field returns a pointer to the boolean behind k.
func (s *Settings) field(k SettingKey) *bool {
	switch k {
	case SettingRemedyReminders:
		return &s.Notifications.RemedyReminders
	case SettingHealthTips:
		return &s.Notifications.HealthTips
	case SettingNewRemedies:
		return &s.Notifications.NewRemedies
	case SettingCommunityUpdates:
		return &s.Notifications.CommunityUpdates
	case SettingProfileVisibility:
		return &s.Privacy.ProfileVisibility
	case SettingDataSharing:
		return &s.Privacy.DataSharing
	case SettingTwoFactorAuth:
		return &s.Privacy.TwoFactorAuth
	case SettingDarkMode:
		return &s.AppPreferences.DarkMode
	case SettingAutoSaveFavorites:
		return &s.AppPreferences.AutoSaveFavorites
	case SettingOfflineMode:
		return &s.AppPreferences.OfflineMode
	}
	return nil
}

// Get returns the value of k. Unknown keys read as false.
func (s Settings) Get(k SettingKey) bool {
	if p := s.field(k); p != nil {
		return *p
	}
	return false
}

// Toggle flips k and returns the new value.
func (s *Settings) Toggle(k SettingKey) (bool, error) {
	p := s.field(k)
	if p == nil {
		return false, fmt.Errorf("unknown setting %v", k)
	}
	*p = !*p
	return *p, nil
}
