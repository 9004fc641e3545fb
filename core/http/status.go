package http

// reasonPhrase returns the standard reason phrase for a small set of
// status codes used by the application layer (spec.md §4.5's
// serializer table); unknown codes get an empty phrase.
func reasonPhrase(status int) string {
	switch status {
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 204:
		return "No Content"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	default:
		return ""
	}
}
