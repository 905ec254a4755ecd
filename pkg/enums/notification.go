package enums

import "fmt"

type NotificationKind string

const (
	NotificationOrderUpdate NotificationKind = "order_update"
	NotificationPromotion   NotificationKind = "promotion"
	NotificationSystem      NotificationKind = "system"
)

var validNotificationKinds = []NotificationKind{
	NotificationOrderUpdate,
	NotificationPromotion,
	NotificationSystem,
}

func (k NotificationKind) String() string { return string(k) }

func (k NotificationKind) IsValid() bool {
	for _, v := range validNotificationKinds {
		if k == v {
			return true
		}
	}
	return false
}

func ParseNotificationKind(raw string) (NotificationKind, error) {
	kind := NotificationKind(raw)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid notification kind %q", raw)
	}
	return kind, nil
}
