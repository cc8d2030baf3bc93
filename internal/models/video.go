package models

// Video represents an embedded video post
type Video struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title" yaml:"title"`
	Author    string `json:"author" db:"author" yaml:"author"`
	Thumbnail string `json:"thumbnail" db:"thumbnail" yaml:"thumbnail"`
	VidURL    string `json:"vid_url" db:"vid_url" yaml:"vid_url"`
}

// VideoDetail is a video together with its comments, ordered by ID
type VideoDetail struct {
	Video    *Video
	Comments []*Comment
}

// FeaturedVideoID is the video shown on the home page
const FeaturedVideoID int64 = 1
