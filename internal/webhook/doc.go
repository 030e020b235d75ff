// Package webhook registers a single webhook route on a chi router.
//
// Register validates Options and mounts a POST route whose pipeline parses
// the body, runs the pre-handler gates in order and finally calls the
// response handler. A gate rejects a request by returning an error; the
// chain stops there and the error is written as the reply.
//
// # Configuration
//
//	webhook:
//	  url: /custom-webhook/:token
//	  handler: echo                 # acknowledge | echo | logger
//	  enable_get_placeholder: true  # GET answers 405
//	  secret_key: ${WEBHOOK_SECRET}
//	  pre_handlers: [check_secret_key, check_even_token]
//
// # Responses
//
// Every failure is a JSON envelope {"statusCode", "error", "message"}:
//
// - 400 Bad Request: empty or malformed JSON body
// - 403 Forbidden: a gate rejected the request
// - 404 Not Found: webhook disabled or unknown path (host router)
// - 405 Method Not Allowed: GET placeholder
// - 413 Payload Too Large: body exceeds MaxBodySize
// - 415 Unsupported Media Type: echo handler without application/json
//
// # Example Usage
//
//	r := chi.NewRouter()
//	err := webhook.Register(r, webhook.Options{
//		URL:         "/custom-webhook/:token",
//		Handler:     webhook.Echo,
//		SecretKey:   os.Getenv("WEBHOOK_SECRET"),
//		PreHandlers: []webhook.PreHandler{
//			webhook.CheckSecretKey(os.Getenv("WEBHOOK_SECRET")),
//			webhook.CheckEvenToken("token"),
//		},
//	})
package webhook
