/**************************************************************************************************
** Command implementations of the shootdesk CLI.
**************************************************************************************************/

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/majorfi/shootdesk/pkg/assistant"
	"github.com/majorfi/shootdesk/pkg/query"
	"github.com/majorfi/shootdesk/pkg/utils"
	"github.com/spf13/cobra"
)

var stdout io.Writer = os.Stdout

// Search flags
var searchMode string
var searchText string
var searchTags []string
var searchImages []string
var searchFaces []string
var searchShoots []string
var searchFrom string
var searchTo string
var searchOrientation string
var searchExcludeLarge bool
var searchFaceFilter string

// Ask flags
var askAttachments []string

func bindSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&searchMode, "mode", string(utils.ModeText), "Search mode: text, image, hybrid, faces or tags")
	cmd.Flags().StringVar(&searchText, "query", "", "Text query (text and hybrid modes)")
	cmd.Flags().StringSliceVar(&searchTags, "tag", nil, "Tag to search for, repeatable (suggested: "+utils.PredefinedTagsString+")")
	cmd.Flags().StringSliceVar(&searchImages, "image", nil, "Ad-hoc query image or directory, repeatable (image and hybrid modes)")
	cmd.Flags().StringSliceVar(&searchFaces, "face", nil, "Face reference image or directory, repeatable (faces mode)")
	cmd.Flags().StringSliceVar(&searchShoots, "select", nil, "Shoot to search in, by name or position, repeatable")
	cmd.Flags().StringVar(&searchFrom, "from", "", "Keep photos modified on or after this date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&searchTo, "to", "", "Keep photos modified on or before this date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&searchOrientation, "orientation", string(utils.OrientationAny), "Orientation filter: any, portrait or landscape")
	cmd.Flags().BoolVar(&searchExcludeLarge, "exclude-large", false, "Exclude photos larger than --max-width/--max-height")
	cmd.Flags().StringVar(&searchFaceFilter, "face-filter", string(utils.FaceFilterUnion), "Face matching: union or intersection")
}

func bindAskFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&askAttachments, "attach", nil, "Image shown alongside the message, repeatable")
}

/**************************************************************************************************
** parseDate reads a date flag. A bare day is taken at midnight UTC for a start bound and at the
** last millisecond of the day for an end bound.
**************************************************************************************************/
func parseDate(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date '%s': %w", value, err)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}

/**************************************************************************************************
** buildState turns the search flags into builder input.
**
** @param ws - Workspace holding the imported shoots
** @return *query.State - Builder input
** @return error - Invalid flag value or unreadable reference image
**************************************************************************************************/
func buildState(ws *workspace) (*query.State, error) {
	state := query.NewState()
	state.SetMode(utils.TMode(strings.ToLower(searchMode)))
	state.TextQuery = searchText
	for _, tag := range searchTags {
		state.Tags.Add(tag)
	}

	images, err := ws.loadAssets(searchImages)
	if err != nil {
		return nil, err
	}
	state.AddQueryImages(images...)

	faces, err := ws.loadAssets(searchFaces)
	if err != nil {
		return nil, err
	}
	state.AddFaceQueryImages(faces...)

	selected, err := ws.resolveShoots(searchShoots)
	if err != nil {
		return nil, err
	}
	for _, id := range selected {
		state.ToggleShoot(id)
	}

	switch mode := utils.TFaceFilterMode(searchFaceFilter); mode {
	case utils.FaceFilterUnion, utils.FaceFilterIntersection:
		state.FaceFilterMode = mode
	default:
		return nil, fmt.Errorf("invalid face filter '%s'", searchFaceFilter)
	}

	switch orientation := utils.TOrientation(searchOrientation); orientation {
	case utils.OrientationAny, utils.OrientationPortrait, utils.OrientationLandscape:
		state.Filters.Orientation = orientation
	default:
		return nil, fmt.Errorf("invalid orientation '%s'", searchOrientation)
	}

	if state.Filters.DateRange.Start, err = parseDate(searchFrom, false); err != nil {
		return nil, err
	}
	if state.Filters.DateRange.End, err = parseDate(searchTo, true); err != nil {
		return nil, err
	}
	state.Filters.ExcludeLarge = searchExcludeLarge
	state.Filters.MaxWidth = utils.IntPtr(maxWidth)
	state.Filters.MaxHeight = utils.IntPtr(maxHeight)
	return state, nil
}

/**************************************************************************************************
** runImport imports the paths and prints the library.
**************************************************************************************************/
func runImport(cmd *cobra.Command, args []string) {
	logger := loadEnv(cmd)
	ws, err := newWorkspace(logger)
	if err != nil {
		logger.Fatal(err)
	}

	if _, err := ws.importPaths(commandContext(cmd), args); err != nil {
		logger.Errorf("Error importing: %v", err)
	}
	ws.printLibrary()
}

/**************************************************************************************************
** runSearch imports the paths, submits one query built from the flags and prints the results,
** the library and the history.
**************************************************************************************************/
func runSearch(cmd *cobra.Command, args []string) {
	logger := loadEnv(cmd)
	ws, err := newWorkspace(logger)
	if err != nil {
		logger.Fatal(err)
	}
	ctx := commandContext(cmd)

	if _, err := ws.importPaths(ctx, args); err != nil {
		logger.Errorf("Error importing: %v", err)
		return
	}

	state, err := buildState(ws)
	if err != nil {
		logger.Errorf("Error reading search flags: %v", err)
		return
	}

	if state.Filters.Orientation != utils.OrientationAny || state.Filters.ExcludeLarge {
		if err := ws.resolveDimensions(ctx); err != nil {
			logger.Errorf("Error reading dimensions: %v", err)
			return
		}
	}

	session := query.NewSession(ws.library, ws.client, nil, logger)
	_, results, err := session.Submit(ctx, state)
	if err == nil {
		utils.Success(stdout, fmt.Sprintf("%d result(s)", len(results.Results)+len(results.Images)))
		if len(results.Results) > 0 || len(results.Images) > 0 {
			utils.Pretty(stdout, results)
		}
	} else {
		utils.Warning(stdout, err)
	}

	ws.printLibrary()
	utils.PrintHistory(stdout, session.History().Entries())
}

/**************************************************************************************************
** runUpload imports the paths and uploads every photo of the library.
**************************************************************************************************/
func runUpload(cmd *cobra.Command, args []string) {
	logger := loadEnv(cmd)
	ws, err := newWorkspace(logger)
	if err != nil {
		logger.Fatal(err)
	}
	ctx := commandContext(cmd)

	if _, err := ws.importPaths(ctx, args); err != nil {
		logger.Errorf("Error importing: %v", err)
		return
	}

	files := ws.library.AllFiles()
	if len(files) == 0 {
		utils.Warning(stdout, "Nothing to upload")
		return
	}

	ack, err := ws.client.Upload(ctx, files)
	if err != nil {
		logger.Errorf("Error uploading: %v", err)
		return
	}
	utils.Success(stdout, fmt.Sprintf("%d file(s) sent, %d acknowledged", len(files), len(ack.Images)))
}

/**************************************************************************************************
** runAsk sends one message to the assistant and prints the conversation.
**************************************************************************************************/
func runAsk(cmd *cobra.Command, args []string) {
	logger := loadEnv(cmd)
	ws, err := newWorkspace(logger)
	if err != nil {
		logger.Fatal(err)
	}

	attachments, err := ws.loadAssets(askAttachments)
	if err != nil {
		logger.Errorf("Error reading attachments: %v", err)
		return
	}

	conversation := assistant.NewConversation(ws.client, logger)
	if _, err := conversation.Send(commandContext(cmd), strings.Join(args, " "), attachments); err != nil {
		logger.Errorf("Error asking assistant: %v", err)
	}
	printConversation(stdout, conversation.Messages())
}

func printConversation(w io.Writer, messages []assistant.Message) {
	for _, msg := range messages {
		line := fmt.Sprintf("[%s] %s", msg.Role, msg.Text)
		if n := len(msg.Attachments); n > 0 {
			line += fmt.Sprintf(" (%d image(s))", n)
		}
		fmt.Fprintln(w, line)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
