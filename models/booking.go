package models

// Booking is the finalized record binding the client's selection and
// successful payment to a session. It is created only after settlement and
// never mutated afterwards.
type Booking struct {
	Therapist   Therapist     `json:"therapist"`
	Day         string        `json:"day"`
	TimeSlot    string        `json:"timeSlot"`
	Payment     PaymentRecord `json:"payment"`
	MeetingID   string        `json:"meetingId"`
	SessionLink string        `json:"sessionLink"`
}

// MeetingDetails is the payload handed to the notification collaborator on
// confirmation.
type MeetingDetails struct {
	TherapistName string `json:"therapistName"`
	Day           string `json:"day"`
	TimeSlot      string `json:"timeSlot"`
	MeetingID     string `json:"meetingId"`
	MeetingURL    string `json:"meetingUrl"`
}
