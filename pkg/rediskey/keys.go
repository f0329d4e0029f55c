package rediskey

const Commit = "killer:commit"
const Version = "killer:version"

func prefix(gameID string) string {
	return "killer:" + gameID + ":"
}

func Session(gameID, token string) string {
	return prefix(gameID) + "session:" + token
}

func ActiveSessionsZSet(gameID string) string {
	return prefix(gameID) + "sessions"
}

func DeparturesLock(gameID string) string {
	return prefix(gameID) + "departures:lock"
}

func Leaderboard(gameID, variant string) string {
	return prefix(gameID) + "cache:leaderboard:" + variant
}

func TotalPlayers(gameID string) string {
	return prefix(gameID) + "players:total"
}

func TotalDepartures(gameID string) string {
	return prefix(gameID) + "departures:total"
}

func RequestsByType(gameID, typeStr string) string {
	return prefix(gameID) + "requests:type:" + typeStr
}

func FailedLogins(gameID, playerID string) string {
	return prefix(gameID) + "login:failed:" + playerID
}

func DeparturesChannel(gameID string) string {
	return prefix(gameID) + "departures:notify"
}
