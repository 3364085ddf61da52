package gateway

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type roomRefDTO struct {
	ID         string `json:"id"`
	RoomNumber string `json:"roomNumber"`
}

type roomEventDTO struct {
	ID             string   `json:"id"`
	EventStartTime string   `json:"eventStartTime"`
	EventEndTime   string   `json:"eventEndTime"`
	User           *userDTO `json:"user"`
}

type roomDTO struct {
	ID         string         `json:"id"`
	RoomNumber string         `json:"roomNumber"`
	RoomImage  string         `json:"roomImage"`
	Events     []roomEventDTO `json:"events"`
}

type viewerEventDTO struct {
	ID             string      `json:"id"`
	EventStartTime string      `json:"eventStartTime"`
	RoomID         *roomRefDTO `json:"roomId"`
}

type meDTO struct {
	ID     string           `json:"id"`
	Email  string           `json:"email"`
	Events []viewerEventDTO `json:"events"`
}

type authPayloadDTO struct {
	User  *userDTO `json:"user"`
	Token string   `json:"token"`
}
