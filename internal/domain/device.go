package domain

import "time"

// DevicePlatform identifies the push platform of a registered device.
type DevicePlatform string

const (
	DevicePlatformIOS     DevicePlatform = "ios"
	DevicePlatformAndroid DevicePlatform = "android"
)

// Device is a push-notification token registered by a user.
type Device struct {
	ID        string
	UserID    string
	Token     string
	Client    string
	Platform  DevicePlatform
	CreatedAt time.Time
}
