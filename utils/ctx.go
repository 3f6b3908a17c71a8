package utils

import (
	"tapr/entity"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

func SetCurrentUser(c *gin.Context, u *entity.PublicUser) {
	c.Set(currentUserKey, u)
}

// CurrentUser returns nil for anonymous requests.
func CurrentUser(c *gin.Context) *entity.PublicUser {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*entity.PublicUser); ok {
			return u
		}
	}
	return nil
}

func CurrentUserID(c *gin.Context) *string {
	if u := CurrentUser(c); u != nil {
		id := u.ID
		return &id
	}
	return nil
}
