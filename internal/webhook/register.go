package webhook

import (
	"net/http"
	"strings"
)

// Register validates opts and mounts the webhook on r. On error nothing is
// registered.
func Register(r Router, opts Options) error {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return err
	}

	if opts.DisableWebhook {
		opts.Logger.Info("webhook disabled", "url", opts.URL)
		return nil
	}

	patterns := routePatterns(opts.URL)
	pipeline := opts.pipeline()
	for _, p := range patterns {
		r.Post(p, pipeline)
	}
	if opts.EnableGetPlaceholder {
		for _, p := range patterns {
			r.Get(p, placeholder)
		}
	}

	opts.Logger.Info("webhook registered",
		"url", opts.URL,
		"routes", patterns,
		"pre_handlers", len(opts.PreHandlers),
		"get_placeholder", opts.EnableGetPlaceholder,
	)
	return nil
}

// pipeline builds the POST handler: body, gates in order, then Handler.
func (o Options) pipeline() http.HandlerFunc {
	return func(w http.ResponseWriter, hr *http.Request) {
		req, err := newRequest(hr, o.MaxBodySize, o.Logger)
		if err != nil {
			req.Log.Debug("webhook body rejected", "error", err)
			WriteError(w, err)
			return
		}

		for _, gate := range o.PreHandlers {
			if err := gate(req); err != nil {
				req.Log.Warn("webhook request rejected", "path", hr.URL.Path, "error", err)
				WriteError(w, err)
				return
			}
		}

		o.Handler(w, req)
	}
}

func placeholder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	WriteError(w, methodNotAllowed(PlaceholderMessage))
}

// routePatterns converts ":name" segments to chi "{name}". When the last
// segment is a parameter the parent path with a trailing slash is added, so
// an empty parameter still reaches the pipeline.
func routePatterns(url string) []string {
	segments := strings.Split(url, "/")
	lastIsParam := false
	for i, seg := range segments {
		lastIsParam = false
		switch {
		case strings.HasPrefix(seg, ":") && len(seg) > 1:
			segments[i] = "{" + seg[1:] + "}"
			lastIsParam = true
		case strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}"):
			lastIsParam = true
		}
	}

	pattern := strings.Join(segments, "/")
	if !lastIsParam {
		return []string{pattern}
	}
	parent := strings.Join(segments[:len(segments)-1], "/") + "/"
	return []string{pattern, parent}
}
