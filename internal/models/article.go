package models

// Article represents a long-form news article
type Article struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title" yaml:"title"`
	Subtitle string `json:"subtitle" db:"subtitle" yaml:"subtitle"`
	Author   string `json:"author" db:"author" yaml:"author"`
	Body     string `json:"body" db:"body" yaml:"body"`
	Date     string `json:"date" db:"date" yaml:"date"` // display date, stored verbatim
	ImgURL   string `json:"img_url" db:"img_url" yaml:"img_url"`
}

// ArticleDetail is an article together with its comments, ordered by ID
type ArticleDetail struct {
	Article  *Article
	Comments []*Comment
}

// FeaturedArticleID is the article shown on the home page
const FeaturedArticleID int64 = 1
