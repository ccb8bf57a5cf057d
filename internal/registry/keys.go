package registry

import (
	"github.com/nfrund/hallrush/internal/catalog"
	"github.com/nfrund/hallrush/internal/pubsub"
	"github.com/nfrund/hallrush/internal/rendering"
	"github.com/nfrund/hallrush/internal/storage"
)

// Shared infrastructure keys. Feature modules define keys for their own services.
const (
	PublisherKey  Key[pubsub.Publisher]   = "core.publisher"
	SubscriberKey Key[pubsub.Subscriber]  = "core.subscriber"
	RendererKey   Key[rendering.Renderer] = "core.renderer"
	StateStoreKey Key[storage.StateStore] = "core.state_store"
	EventLogKey   Key[storage.EventLog]   = "core.event_log"
	CatalogKey    Key[*catalog.Catalog]   = "core.catalog"
)
