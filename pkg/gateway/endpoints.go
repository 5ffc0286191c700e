package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/majorfi/shootdesk/pkg/utils"
	"github.com/sirupsen/logrus"
)

/**************************************************************************************************
** Search sends a built query to POST /search.
**
** @param ctx - Context of the call
** @param q - Validated query
** @return utils.TResultSet - Backend results (empty in dry-run mode)
** @return error - *GatewayError or an encoding error
**************************************************************************************************/
func (c *Client) Search(ctx context.Context, q utils.TSearchQuery) (utils.TResultSet, error) {
	if c.dryRun {
		c.logger.WithFields(logrus.Fields{
			"Mode":            q.Mode,
			"Query":           q.TextQuery,
			"Images":          len(q.BaseImages),
			"FaceQueryImages": len(q.FaceQueryImages),
			"Tags":            q.Tags,
		}).Infof("[DRY RUN] Search payload ready")
		c.logger.Debugf("[DRY RUN] Filters: %+v", toWireFilters(q))
		return utils.TResultSet{Results: []json.RawMessage{}}, nil
	}

	form, err := encodeSearch(q)
	if err != nil {
		return utils.TResultSet{}, fmt.Errorf("error encoding search: %w", err)
	}

	var result utils.TResultSet
	if err := c.doRequest(ctx, "/search", form, &result); err != nil {
		return utils.TResultSet{}, err
	}
	if result.Results == nil {
		result.Results = []json.RawMessage{}
	}
	c.logger.Debugf("Search returned %d result(s)", len(result.Results))
	return result, nil
}

/**************************************************************************************************
** Upload sends assets to POST /upload, one "files" part per asset.
**
** @param ctx - Context of the call
** @param assets - Assets to send
** @return utils.TUploadAck - Backend acknowledgement (empty in dry-run mode)
** @return error - *GatewayError or an encoding error
**************************************************************************************************/
func (c *Client) Upload(ctx context.Context, assets []*utils.TImageAsset) (utils.TUploadAck, error) {
	if c.dryRun {
		c.logger.Infof("[DRY RUN] Upload payload ready: %d file(s)", len(assets))
		return utils.TUploadAck{Images: []json.RawMessage{}}, nil
	}

	form := newMultipartForm()
	if err := form.files("files", assets); err != nil {
		return utils.TUploadAck{}, fmt.Errorf("error encoding upload: %w", err)
	}
	if err := form.close(); err != nil {
		return utils.TUploadAck{}, fmt.Errorf("error encoding upload: %w", err)
	}

	var ack utils.TUploadAck
	if err := c.doRequest(ctx, "/upload", form, &ack); err != nil {
		return utils.TUploadAck{}, err
	}
	return ack, nil
}

/**************************************************************************************************
** Ask sends one message to POST /assistant.
**
** @param ctx - Context of the call
** @param message - User message
** @return utils.TAssistantReply - Assistant reply (a fixed stub in dry-run mode)
** @return error - *GatewayError or an encoding error
**************************************************************************************************/
func (c *Client) Ask(ctx context.Context, message string) (utils.TAssistantReply, error) {
	if c.dryRun {
		c.logger.Infof("[DRY RUN] Assistant payload ready: %q", message)
		return utils.TAssistantReply{Reply: utils.AssistantStubReply}, nil
	}

	form := newMultipartForm()
	if err := form.field("message", message); err != nil {
		return utils.TAssistantReply{}, fmt.Errorf("error encoding message: %w", err)
	}
	if err := form.close(); err != nil {
		return utils.TAssistantReply{}, fmt.Errorf("error encoding message: %w", err)
	}

	var reply utils.TAssistantReply
	if err := c.doRequest(ctx, "/assistant", form, &reply); err != nil {
		return utils.TAssistantReply{}, err
	}
	return reply, nil
}
