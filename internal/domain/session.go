package domain

type ContextKey string

const SessionContextKey ContextKey = "session"
