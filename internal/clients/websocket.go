package clients

import (
	"context"

	ws "talent-horizon/internal/transport/websocket"
)

const (
	MessageApplicationUpdated = "application_updated"
	MessageExportProgress     = "export_progress"
	MessageExportComplete     = "export_complete"
	MessageExportFailed       = "export_failed"
)

// WebSocketClient pushes change and export events to a client's open
// sockets. A nil hub turns every call into a no-op.
type WebSocketClient struct {
	hub *ws.Hub
}

func NewWebSocketClient(hub *ws.Hub) *WebSocketClient {
	return &WebSocketClient{
		hub: hub,
	}
}

// Channel names the per-client channel a message type is published on.
func Channel(messageType, clientID string) string {
	return messageType + "#" + clientID
}

func (c *WebSocketClient) send(clientID, messageType string, data map[string]any) {
	c.hub.Broadcast(clientID, &ws.Message{
		Type:    messageType,
		Channel: Channel(messageType, clientID),
		Data:    data,
	})
}

func (c *WebSocketClient) NotifyApplicationUpdated(ctx context.Context, clientID, appType, id, status string) error {
	if c.hub == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.send(clientID, MessageApplicationUpdated, map[string]any{
		"id":     id,
		"type":   appType,
		"status": status,
	})
	return nil
}

func (c *WebSocketClient) NotifyExportProgress(ctx context.Context, clientID, exportID string, progress float64, stage string) error {
	if c.hub == nil {
		return nil
	}

	data := map[string]any{
		"id":       exportID,
		"progress": progress,
	}
	if stage != "" {
		data["stage"] = stage
	}
	c.send(clientID, MessageExportProgress, data)
	return nil
}

func (c *WebSocketClient) NotifyExportComplete(ctx context.Context, clientID, exportID, url, filename string) error {
	if c.hub == nil {
		return nil
	}

	c.send(clientID, MessageExportComplete, map[string]any{
		"id":        exportID,
		"url":       url,
		"filename":  filename,
		"client_id": clientID,
	})
	return nil
}

func (c *WebSocketClient) NotifyExportFailed(ctx context.Context, clientID, exportID, errMsg string) error {
	if c.hub == nil {
		return nil
	}

	c.send(clientID, MessageExportFailed, map[string]any{
		"id":        exportID,
		"message":   errMsg,
		"client_id": clientID,
	})
	return nil
}
