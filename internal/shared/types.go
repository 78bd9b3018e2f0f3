package shared

// Asynq task types and queue names shared between the API and the worker.
const (
	TypeRefreshTrending = "catalog:refresh_trending"

	QueueDefault = "default"
	QueueCatalog = "catalog"
)
