package rpc

// Operation names form the wire contract between the gateway and the
// backend services. They are a fixed vocabulary: renaming one is a
// breaking protocol change for every deployed service.

// Users service operations.
const (
	PatternUserCreate       = "users.create-user"
	PatternUserRevertCreate = "users.revert-create-user"
	PatternUserGetByName    = "users.get-by-username"
	PatternUserGetByIDHash  = "users.get-by-idhash"
	PatternUserGetByID      = "users.get-by-id"
	PatternUserGetUsers     = "users.get-users"
	PatternUserUpdate       = "users.update"
	PatternUserSoftDelete   = "users.soft-delete"
)

// Auth service operations.
const (
	PatternAuthRegisterCredential = "auth.register-credential"
	PatternAuthLogin              = "auth.login"
	PatternAuthValidateToken      = "auth.validate-token"
	PatternAuthGetUserRole        = "auth.get-user-role"
)

// Tweets service operations.
const (
	PatternTweetCreate             = "tweets.create-tweet"
	PatternTweetGetTweets          = "tweets.get-tweets"
	PatternTweetGetTweet           = "tweets.get-tweet"
	PatternTweetUpdate             = "tweets.update-tweet"
	PatternTweetSoftDelete         = "tweets.soft-delete-tweet"
	PatternTweetSoftDeleteByAuthor = "tweets.soft-delete-by-author"
)
