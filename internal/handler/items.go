package handler

import (
	"net/http"

	"github.com/osse101/GridClash_Go/internal/item"
	"github.com/osse101/GridClash_Go/internal/logger"
	"github.com/osse101/GridClash_Go/internal/naming"
)

// ItemListing is one item definition known to the registry
type ItemListing struct {
	InternalName string `json:"internal_name"`
	DisplayName  string `json:"display_name"`
	Kind         string `json:"kind"`
}

// HandleListItems returns every item definition the registry can spawn
func HandleListItems(registry *item.Registry, names naming.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		internalNames, err := registry.Names()
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListItemsFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}

		listings := make([]ItemListing, 0, len(internalNames))
		for _, name := range internalNames {
			def, err := registry.Definition(name)
			if err != nil {
				continue
			}
			listings = append(listings, ItemListing{
				InternalName: def.InternalName,
				DisplayName:  names.DisplayName(def.InternalName),
				Kind:         def.Kind,
			})
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: listings})
	}
}
