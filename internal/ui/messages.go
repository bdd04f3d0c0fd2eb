package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"linkloft-admin/internal/core/bulk"
	"linkloft-admin/internal/lh"
)

// ---------- Messages / Cmds ----------

type connectMsg struct {
	err error
}

type loadMsg struct {
	bookmarks []lh.Bookmark
	tags      []lh.Tag
	folders   []lh.Folder
	err       error
}

// bulkEventMsg carries one stream event into the update loop.
type bulkEventMsg struct {
	ev bulk.Event
}

// bulkDoneMsg signals that the consumer returned. The events channel is
// closed before this message is produced.
type bulkDoneMsg struct {
	err error
}

func (m Model) connectCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return connectMsg{err: api.Ping(ctx)}
	}
}

// loadCmd fetches every collection the browse view needs. Collections that
// are still fresh in the cache are not refetched.
func (m Model) loadCmd() tea.Cmd {
	api := m.api
	cache := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var out loadMsg
		if v, ok := cache.Get(bulk.CacheBookmarks); ok {
			out.bookmarks = v.([]lh.Bookmark)
		} else {
			bms, err := api.ListBookmarks(ctx, lh.ListBookmarksOpts{PerPage: 50})
			if err != nil {
				return loadMsg{err: fmt.Errorf("bookmarks: %w", err)}
			}
			cache.Put(bulk.CacheBookmarks, bms)
			out.bookmarks = bms
		}
		if v, ok := cache.Get(bulk.CacheTags); ok {
			out.tags = v.([]lh.Tag)
		} else {
			tags, err := api.ListTags(ctx)
			if err != nil {
				return loadMsg{err: fmt.Errorf("tags: %w", err)}
			}
			cache.Put(bulk.CacheTags, tags)
			out.tags = tags
		}
		if v, ok := cache.Get(bulk.CacheFolders); ok {
			out.folders = v.([]lh.Folder)
		} else {
			folders, err := api.ListFolders(ctx)
			if err != nil {
				return loadMsg{err: fmt.Errorf("folders: %w", err)}
			}
			cache.Put(bulk.CacheFolders, folders)
			out.folders = folders
		}
		return out
	}
}

// runBulkCmd drives the consumer in a background goroutine, pushing every
// event into ch. The channel is closed before the final message is
// returned, so a drain on bulkDoneMsg sees everything.
func runBulkCmd(ctx context.Context, c bulk.Consumer, action bulk.Action, ids []string, ch chan bulk.Event) tea.Cmd {
	return func() tea.Msg {
		_, err := c.Start(ctx, action, ids, func(ev bulk.Event) {
			ch <- ev
		})
		close(ch)
		return bulkDoneMsg{err: err}
	}
}

// listenBulkEvents relays the next event from the channel into the event
// loop; the update handler reschedules it after each message.
func listenBulkEvents(ch chan bulk.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return bulkEventMsg{ev: ev}
	}
}
