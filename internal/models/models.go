package models

import "time"

const (
	PrivacyPrivate  = 0
	PrivacyUnlisted = 1
	PrivacyPublic   = 2
)

type Channel struct {
	Id               uint      `json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Name             string    `gorm:"uniqueIndex;size:64" json:"name"`
	Email            string    `gorm:"uniqueIndex;size:320" json:"email"`
	Password         []byte    `json:"-"`
	Description      string    `json:"description"`
	AvatarPath       string    `json:"avatarPath"`
	SubscribersCount uint      `json:"subscribersCount"`
}

// Subscription is a directed edge: fromChannel follows toChannel.
// At most one edge per ordered pair.
type Subscription struct {
	Id            uint      `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	FromChannelId uint      `gorm:"uniqueIndex:idx_subscription_pair" json:"fromChannelId"`
	ToChannelId   uint      `gorm:"uniqueIndex:idx_subscription_pair" json:"toChannelId"`
}

type Video struct {
	Id               uint      `json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	ChannelId        uint      `json:"channelId"`
	Channel          *Channel  `json:"channel,omitempty"`
	Privacy          int       `gorm:"type:smallint;default:0" json:"privacy"`
	Name             string    `gorm:"size:128" json:"name"`
	Description      string    `json:"description"`
	VideoPath        string    `json:"videoPath"`
	OriginalFileName string    `json:"originalFileName"`
	ThumbnailPath    string    `json:"thumbnailPath"`
	Duration         float64   `json:"duration"`
	Views            uint      `json:"views"`
	LikesCount       uint      `json:"likesCount"`

	Comments []VideoComment `json:"comments,omitempty"`
}

// VideoLike existence means "channel liked video".
type VideoLike struct {
	Id        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ChannelId uint      `gorm:"uniqueIndex:idx_like_pair" json:"channelId"`
	VideoId   uint      `gorm:"uniqueIndex:idx_like_pair" json:"videoId"`
	Video     *Video    `json:"video,omitempty"`
}

type VideoComment struct {
	Id        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ChannelId uint      `json:"channelId"`
	Channel   *Channel  `json:"channel,omitempty"`
	VideoId   uint      `json:"videoId"`
	Content   string    `json:"content"`
}

// RecoveryTicket is a single-use password reset credential. ExpiresAt is
// unix milliseconds; the ticket is deleted on use or by the daily sweep.
type RecoveryTicket struct {
	Id        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Hash      string    `gorm:"uniqueIndex;size:255" json:"hash"`
	Email     string    `gorm:"size:320" json:"email"`
	ExpiresAt int64     `json:"expiresAt"`
}
