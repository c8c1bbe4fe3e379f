package response

import "github.com/Guyuepp/go-social-feed/domain"

type Notification struct {
	ID          string `json:"id"`
	FromUserID  string `json:"from_user_id"`
	Text        string `json:"text"`
	Kind        string `json:"kind"`
	SubjectPath string `json:"subject_path"`
	Date        string `json:"date"`
	Read        bool   `json:"read"`
}

func NewNotificationFromDomain(n *domain.Notification) Notification {
	return Notification{
		ID:          n.ID,
		FromUserID:  n.FromUserID,
		Text:        n.Text,
		Kind:        string(n.Kind),
		SubjectPath: n.SubjectPath,
		Date:        n.Date.Format(DateTimeFormat),
		Read:        n.Read,
	}
}
