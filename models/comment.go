package models

import "time"

// Comment is moderated: only approved, non-spam comments are visible in
// public listings. A comment may reply to another via ParentID; the parent
// keeps a back-reference list of reply ids.
type Comment struct {
	CommentID  string    `json:"commentid" bson:"commentid"`
	UserID     string    `json:"userid" bson:"userid"`
	Username   string    `json:"username" bson:"username"`
	ProductID  string    `json:"productid,omitempty" bson:"productid,omitempty"`
	ParentID   string    `json:"parentid,omitempty" bson:"parentid,omitempty"`
	Replies    []string  `json:"replies,omitempty" bson:"replies,omitempty"`
	Content    string    `json:"content" bson:"content"`
	IsApproved bool      `json:"is_approved" bson:"is_approved"`
	IsSpam     bool      `json:"is_spam" bson:"is_spam"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}
