package utils

import (
	"concierge-server/models"
	"concierge-server/storage"
	"errors"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// Role is the explicit form of the implicit rule the data model encodes:
// an identity with an Owner row is the owner of exactly that property,
// an identity without one is an admin.
type Role struct {
	Kind       string `json:"kind"`
	PropertyID uint   `json:"propertyID,omitempty"`
}

func (r Role) IsAdmin() bool { return r.Kind == RoleAdmin }

// Cache lifetime matches the access-token lifetime, so a role survives
// at most one session before being re-derived. Provisioning and owner
// deletion invalidate eagerly.
var roleCache = cache.New(24*time.Hour, 30*time.Minute)

func roleCacheKey(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

// DeriveRole resolves the role for an identity, consulting the cache
// first and the owners table on a miss.
func DeriveRole(userID uint) (Role, error) {
	key := roleCacheKey(userID)
	if cached, found := roleCache.Get(key); found {
		return cached.(Role), nil
	}

	var owner models.Owner
	err := storage.DB.Where("user_id = ?", userID).First(&owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role := Role{Kind: RoleAdmin}
			roleCache.Set(key, role, cache.DefaultExpiration)
			return role, nil
		}
		return Role{}, err
	}

	role := Role{Kind: RoleOwner, PropertyID: owner.PropertyID}
	roleCache.Set(key, role, cache.DefaultExpiration)
	return role, nil
}

// InvalidateRole drops the cached role after the identity's owner rows
// change, so the next request re-derives it.
func InvalidateRole(userID uint) {
	roleCache.Delete(roleCacheKey(userID))
}

// FlushRoleCache empties the cache entirely. Used by tests, which reuse
// row IDs across fresh databases.
func FlushRoleCache() {
	roleCache.Flush()
}
