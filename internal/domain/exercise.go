package domain

import "time"

// Exercise is a catalog entry that workout segments may point at.
// VideoURL is either an absolute URL or an object key in the video bucket.
type Exercise struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	VideoURL  string    `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ExerciseRef is the resolved, display-ready form of a segment's exercise link.
type ExerciseRef struct {
	ID       string
	Name     string
	VideoURL string
}
