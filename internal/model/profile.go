package model

// Derived counters maintained on UserProfiles. They are denormalized and
// adjusted by side-effect hooks; decrements are guarded so they never go
// below zero.
const (
	CounterFollowers     = "followers"
	CounterFollowing     = "following"
	CounterPostsCount    = "postsCount"
	CounterLikesReceived = "totalLikesReceived"
)

// AttrProfilePictureURL is updated as a side effect of the presigned
// profile-picture upload.
const AttrProfilePictureURL = "profilePictureUrl"

// DefaultProfilePictureURL seeds new profiles.
const DefaultProfilePictureURL = "https://images.pexels.com/photos/3771069/pexels-photo-3771069.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"

// NewProfile builds the default profile record created alongside a user.
func NewProfile(userID, username, email, name string) Record {
	return Record{
		AttrUserID:            userID,
		"username":            username,
		"email":               email,
		"name":                name,
		"gender":              "",
		"dob":                 "",
		"phoneNumber":         "",
		AttrProfilePictureURL: DefaultProfilePictureURL,
		"authorId":            userID,
		"bio":                 "",
		CounterFollowers:      0,
		CounterFollowing:      0,
		CounterPostsCount:     0,
		CounterLikesReceived:  0,
		"education":           "",
		"status":              "",
		"address":             "",
	}
}
