package post

import (
	domain "github.com/Asror571/insta-server/internal/domain/post"
)

func ToResponseFeed(feedDomain domain.Feed) Feed {
	feed := make(Feed, len(feedDomain))
	for idx, e := range feedDomain {
		feed[idx] = FeedEntry{
			Username: e.Username,
			Image:    e.Image,
		}
	}

	return feed
}
