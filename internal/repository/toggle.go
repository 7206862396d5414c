package repository

import (
	"videoshub-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	Subscribed   = "SUBSCRIBED"
	Unsubscribed = "UNSUBSCRIBED"
	Liked        = "LIKED"
	Unliked      = "UNLIKED"
)

// Edges abstracts a directed pair table together with the denormalized
// counter stored on the target entity.
type Edges interface {
	Exists(actorId, targetId uint) (bool, error)
	Insert(actorId, targetId uint) error
	Remove(actorId, targetId uint) error
	BumpCounter(targetId uint, delta int) error
}

// ToggleEdge flips the (actorId, targetId) edge and keeps the target's
// counter equal to the number of edges pointing at it. Callers must hold a
// lock on the target row for the whole call: the existence check and the
// two writes are only atomic as a unit.
func ToggleEdge(e Edges, actorId, targetId uint) (added bool, err error) {
	exists, err := e.Exists(actorId, targetId)
	if err != nil {
		return false, err
	}

	if !exists {
		if err := e.BumpCounter(targetId, 1); err != nil {
			return false, err
		}
		return true, e.Insert(actorId, targetId)
	}

	if err := e.BumpCounter(targetId, -1); err != nil {
		return false, err
	}
	return false, e.Remove(actorId, targetId)
}

// ToggleSubscription subscribes fromId to toId, or unsubscribes when the
// edge already exists. Returns gorm.ErrRecordNotFound when toId does not
// resolve to a channel.
func ToggleSubscription(db *gorm.DB, fromId, toId uint) (string, error) {
	var result string
	err := db.Transaction(func(tx *gorm.DB) error {
		var target models.Channel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&target, toId).Error; err != nil {
			return err
		}

		added, err := ToggleEdge(subscriptionEdges{tx}, fromId, toId)
		if err != nil {
			return err
		}

		if added {
			result = Subscribed
		} else {
			result = Unsubscribed
		}
		return nil
	})
	return result, err
}

// ToggleVideoLike likes or unlikes videoId on behalf of channelId.
func ToggleVideoLike(db *gorm.DB, channelId, videoId uint) (string, error) {
	var result string
	err := db.Transaction(func(tx *gorm.DB) error {
		var target models.Video
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&target, videoId).Error; err != nil {
			return err
		}

		added, err := ToggleEdge(likeEdges{tx}, channelId, videoId)
		if err != nil {
			return err
		}

		if added {
			result = Liked
		} else {
			result = Unliked
		}
		return nil
	})
	return result, err
}

type subscriptionEdges struct {
	tx *gorm.DB
}

func (e subscriptionEdges) Exists(fromId, toId uint) (bool, error) {
	var count int64
	err := e.tx.Model(&models.Subscription{}).
		Where("from_channel_id = ? AND to_channel_id = ?", fromId, toId).
		Count(&count).Error
	return count > 0, err
}

func (e subscriptionEdges) Insert(fromId, toId uint) error {
	return e.tx.Create(&models.Subscription{FromChannelId: fromId, ToChannelId: toId}).Error
}

func (e subscriptionEdges) Remove(fromId, toId uint) error {
	return e.tx.Where("from_channel_id = ? AND to_channel_id = ?", fromId, toId).
		Delete(&models.Subscription{}).Error
}

func (e subscriptionEdges) BumpCounter(toId uint, delta int) error {
	return e.tx.Model(&models.Channel{}).Where("id = ?", toId).
		UpdateColumn("subscribers_count", gorm.Expr("subscribers_count + ?", delta)).Error
}

type likeEdges struct {
	tx *gorm.DB
}

func (e likeEdges) Exists(channelId, videoId uint) (bool, error) {
	var count int64
	err := e.tx.Model(&models.VideoLike{}).
		Where("channel_id = ? AND video_id = ?", channelId, videoId).
		Count(&count).Error
	return count > 0, err
}

func (e likeEdges) Insert(channelId, videoId uint) error {
	return e.tx.Create(&models.VideoLike{ChannelId: channelId, VideoId: videoId}).Error
}

func (e likeEdges) Remove(channelId, videoId uint) error {
	return e.tx.Where("channel_id = ? AND video_id = ?", channelId, videoId).
		Delete(&models.VideoLike{}).Error
}

func (e likeEdges) BumpCounter(videoId uint, delta int) error {
	return e.tx.Model(&models.Video{}).Where("id = ?", videoId).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
}
