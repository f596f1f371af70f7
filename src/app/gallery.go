package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"galleryserv/src/model"
)

// Gallery assembles the ordered list of image records for one page render.
// Every invocation re-queries the store; nothing is cached between passes.
type Gallery struct {
	store            model.MediaStore
	folder           string
	maxResults       int
	placeholderWidth int
}

func NewGallery(store model.MediaStore, folder string, maxResults, placeholderWidth int) *Gallery {
	return &Gallery{
		store:            store,
		folder:           folder,
		maxResults:       maxResults,
		placeholderWidth: placeholderWidth,
	}
}

// Assemble lists the configured folder and maps each object, in listing
// order, to an ImageRecord with a zero-based positional id. Placeholder
// renditions are fetched concurrently for every record and reattached by
// original position once all fetches have settled; a single failed fetch
// fails the whole pass.
func (g *Gallery) Assemble(ctx context.Context) ([]model.ImageRecord, error) {
	objects, err := g.store.ListFolder(ctx, g.folder, g.maxResults)
	if err != nil {
		return nil, fmt.Errorf("can not list gallery folder %s: %v", g.folder, err)
	}

	records := make([]model.ImageRecord, len(objects))
	for i, obj := range objects {
		publicID, format := splitKey(obj.Key)
		imageURL, err := g.store.ObjectURL(ctx, obj.Key)
		if err != nil {
			return nil, fmt.Errorf("can not resolve url for %s: %v", obj.Key, err)
		}
		records[i] = model.ImageRecord{
			ID:       i,
			PublicID: publicID,
			Format:   format,
			URL:      imageURL,
		}
	}

	type rendition struct {
		dataURL       string
		width, height int
	}
	// Indexed buffer: goroutine i writes only slot i, so reattachment stays
	// aligned with listing order no matter how the fetches interleave.
	renditions := make([]rendition, len(objects))
	errCh := make(chan error, len(objects))
	wg := sync.WaitGroup{}
	wg.Add(len(objects))
	for i, obj := range objects {
		go func(idx int, key string) {
			defer wg.Done()
			data, err := g.store.FetchObject(ctx, key)
			if err != nil {
				errCh <- fmt.Errorf("can not fetch rendition for %s: %v", key, err)
				return
			}
			dataURL, w, h, err := BlurPlaceholder(data, g.placeholderWidth)
			if err != nil {
				errCh <- fmt.Errorf("can not build placeholder for %s: %v", key, err)
				return
			}
			renditions[idx] = rendition{dataURL: dataURL, width: w, height: h}
		}(i, obj.Key)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	for i := range records {
		records[i].BlurDataURL = renditions[i].dataURL
		records[i].Width = renditions[i].width
		records[i].Height = renditions[i].height
	}
	return records, nil
}

// splitKey separates an object key into its public id (key without the
// extension) and format ("" when the key carries no extension).
func splitKey(key string) (string, string) {
	dot := strings.LastIndex(key, ".")
	if dot == -1 || strings.Contains(key[dot:], "/") {
		return key, ""
	}
	return key[:dot], key[dot+1:]
}
