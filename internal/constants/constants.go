package constants

// Centralized constants for env keys, routes and shared messages.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "TRIAD_CONFIG"
	EnvDatabasePath        = "TRIAD_DB"

	// Session / Cookie names
	CookieSessionName = "t_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteVersion            = "/version"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteAuthLogout         = "/auth/logout"
	RoutePublicBattles      = "/public-battles"
	RouteLeaderboard        = "/leaderboard"
	RoutePlayerStats        = "/player-stats"
	RoutePlayerProfile      = "/player-profile"
	RouteCards              = "/cards"
	RouteNotifications      = "/notifications"
	RouteBattles            = "/battles"
	RouteBattlesJoin        = "/battles/join"
	RouteBattleByCode       = "/battles/:battleCode"
	RouteBattleSelection    = "/battles/:battleCode/selection"
	RouteBattleResolve      = "/battles/:battleCode/resolve"
	RouteBattleEvents       = "/battles/:battleCode/ws"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"

	ErrInvalidBattleCode = "Invalid battle code"
	ErrBattleNotFound    = "Battle not found"
	ErrFailedCreate      = "Failed to create battle"
	ErrFailedUpdate      = "Failed to update battle"
	ErrBattleNameExceeds = "Battle name exceeds 32 characters"
	ErrDescriptionLong   = "Description exceeds 256 characters"
	ErrBattleFull        = "Battle already has two participants"
	ErrCannotJoinOwn     = "Cannot accept your own challenge"

	ErrFailedFetchBattles     = "Failed to fetch battles"
	ErrFailedFetchCards       = "Failed to fetch cards"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrFailedFetchNotes       = "Failed to fetch notifications"
	ErrFailedEncode           = "Failed to encode response"
	ErrEmailRequired          = "email is required"

	ErrCardRequired        = "card_public_id is required"
	ErrInvalidCard         = "Invalid card for this player"
	ErrAlreadySelected     = "A different card was already selected for this battle"
	ErrNotParticipant      = "Player not in this battle"
	ErrBattleNotSelectable = "Battle is not accepting selections"
	ErrFailedStoreSel      = "Failed to store selection"

	ErrBattleNotResolvable = "Battle is not ready to resolve"
	ErrMissingCardData     = "A selected card could not be loaded"
	ErrFailedResolve       = "Failed to resolve battle"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldCode     = "join_code"
	LogFieldPlayer   = "player"
	LogFieldCardID   = "card_id"
	LogFieldOutcome  = "outcome"
	LogFieldAddr     = "addr"
	LogFieldTopic    = "topic"
)
