package domain

// NoBackground: пользователь фон не выбирал.
const NoBackground = "none"

type UserSettings struct {
	DisplayName   string `json:"displayName" validate:"required,max=128"`
	Camera        string `json:"camera"`
	Microphone    string `json:"microphone"`
	Speaker       string `json:"speaker"`
	VideoQuality  string `json:"videoQuality" validate:"oneof=sd hd fhd"`
	AutoJoinAudio bool   `json:"autoJoinAudio"`
	AutoJoinVideo bool   `json:"autoJoinVideo"`
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme" validate:"oneof=dark light"`
}

func DefaultSettings() UserSettings {
	return UserSettings{
		DisplayName:   "John Doe",
		VideoQuality:  "hd",
		AutoJoinAudio: true,
		AutoJoinVideo: true,
		Notifications: true,
		Theme:         "dark",
	}
}
