//go:build windows

package window

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/google/uuid"
	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32DLL    = windows.NewLazySystemDLL("user32.dll")
	procIsWindow = user32DLL.NewProc("IsWindow")
)

const buttonClassName = "BUTTON"

// windowProc is the single entry point shared by every window of every
// class registered here. Callbacks are a limited resource, so it is created
// once.
var windowProc = sync.OnceValue(func() uintptr {
	return windows.NewCallback(wndProc)
})

// showDialogFn is a test seam.
var showDialogFn = func(owner win.HWND, text, caption *uint16) {
	win.MessageBox(owner, text, caption, win.MB_OK)
}

// windowState is what the window procedure needs for one live window. It is
// found through the cookie stored in GWLP_USERDATA.
type windowState struct {
	controlID   ControlID
	dialogTitle *uint16
	dialogText  *uint16
	logger      *slog.Logger
}

var (
	statesMu   sync.Mutex
	states     = map[uintptr]*windowState{}
	lastCookie uintptr
)

func storeState(state *windowState) uintptr {
	statesMu.Lock()
	defer statesMu.Unlock()
	lastCookie++
	states[lastCookie] = state
	return lastCookie
}

func lookupState(cookie uintptr) *windowState {
	if cookie == 0 {
		return nil
	}
	statesMu.Lock()
	defer statesMu.Unlock()
	return states[cookie]
}

func releaseState(cookie uintptr) {
	statesMu.Lock()
	defer statesMu.Unlock()
	delete(states, cookie)
}

func wndProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	h := win.HWND(hwnd)
	message := uint32(msg)

	// Messages sent before Create attaches the cookie find no state and take
	// the default path. The lock is not held while acting: MessageBox
	// re-enters wndProc.
	state := lookupState(win.GetWindowLongPtr(h, win.GWLP_USERDATA))
	if state == nil {
		return win.DefWindowProc(h, message, wParam, lParam)
	}

	switch route(state.controlID, message, wParam) {
	case actionShowDialog:
		state.logger.Debug("[DEBUG-WINDOW] button clicked", "controlID", state.controlID)
		showDialogFn(h, state.dialogText, state.dialogTitle)
		return 0
	case actionHandled:
		return 0
	case actionQuit:
		state.logger.Debug("[DEBUG-WINDOW] window destroyed, posting quit")
		win.PostQuitMessage(0)
		return 0
	default:
		return win.DefWindowProc(h, message, wParam, lParam)
	}
}

// registerClass registers className bound to windowProc. A class that is
// already registered is accepted as is.
func registerClass(instance win.HINSTANCE, className *uint16) error {
	wc := win.WNDCLASSEX{
		LpfnWndProc:   windowProc(),
		HInstance:     instance,
		HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_ARROW)),
		HbrBackground: win.HBRUSH(win.COLOR_WINDOW + 1),
		LpszClassName: className,
	}
	wc.CbSize = uint32(unsafe.Sizeof(wc))

	if atom := win.RegisterClassEx(&wc); atom != 0 {
		return nil
	}
	err := lastError("RegisterClassExW")
	if errors.Is(err, windows.ERROR_CLASS_ALREADY_EXISTS) {
		return nil
	}
	return err
}

// Create registers the window class, then creates the top-level window and
// its push button. The window is not shown.
func Create(opts Options) (*Session, error) {
	if err := opts.validate(); err != nil {
		return nil, &CreationError{Stage: StageValidate, Err: err}
	}

	className, err := windows.UTF16PtrFromString(opts.ClassName)
	if err != nil {
		return nil, &CreationError{Stage: StageValidate, Err: err}
	}
	title, err := windows.UTF16PtrFromString(opts.Title)
	if err != nil {
		return nil, &CreationError{Stage: StageValidate, Err: err}
	}
	buttonClass, err := windows.UTF16PtrFromString(buttonClassName)
	if err != nil {
		return nil, &CreationError{Stage: StageValidate, Err: err}
	}
	buttonText, err := windows.UTF16PtrFromString(opts.ButtonText)
	if err != nil {
		return nil, &CreationError{Stage: StageValidate, Err: err}
	}
	dialogTitle, err := windows.UTF16PtrFromString(opts.DialogTitle)
	if err != nil {
		return nil, &CreationError{Stage: StageValidate, Err: err}
	}
	dialogText, err := windows.UTF16PtrFromString(opts.DialogText)
	if err != nil {
		return nil, &CreationError{Stage: StageValidate, Err: err}
	}

	instance := win.HINSTANCE(opts.Instance)
	if instance == 0 {
		instance = win.GetModuleHandle(nil)
	}
	if err := registerClass(instance, className); err != nil {
		return nil, &CreationError{Stage: StageRegister, Err: err}
	}

	id := uuid.NewString()
	logger := opts.logger().With("session", id)
	cookie := storeState(&windowState{
		controlID:   opts.ControlID,
		dialogTitle: dialogTitle,
		dialogText:  dialogText,
		logger:      logger,
	})

	hwnd := win.CreateWindowEx(
		0,
		className,
		title,
		win.WS_OVERLAPPEDWINDOW,
		win.CW_USEDEFAULT, win.CW_USEDEFAULT,
		opts.Width, opts.Height,
		0, 0, instance,
		nil,
	)
	if hwnd == 0 {
		err := lastError("CreateWindowExW")
		releaseState(cookie)
		return nil, &CreationError{Stage: StageWindow, Err: err}
	}
	win.SetWindowLongPtr(hwnd, win.GWLP_USERDATA, cookie)

	button := win.CreateWindowEx(
		0,
		buttonClass,
		buttonText,
		win.WS_CHILD|win.WS_VISIBLE|win.WS_TABSTOP|win.BS_DEFPUSHBUTTON,
		opts.ButtonX, opts.ButtonY,
		opts.ButtonWidth, opts.ButtonHeight,
		hwnd, win.HMENU(opts.ControlID), instance,
		nil,
	)
	if button == 0 {
		// The hidden parent is abandoned but detached, so it can never
		// post a quit into a later session's loop.
		err := lastError("CreateWindowExW(BUTTON)")
		releaseState(cookie)
		return nil, &CreationError{Stage: StageControl, Err: err}
	}

	logger.Debug("[DEBUG-WINDOW] window created",
		"class", opts.ClassName, "hwnd", uintptr(hwnd), "controlID", opts.ControlID)
	return &Session{
		id:        id,
		hwnd:      Handle(hwnd),
		button:    Handle(button),
		controlID: opts.ControlID,
		cookie:    cookie,
		logger:    logger,
	}, nil
}

// Show makes the window visible and paints it once.
func (s *Session) Show() {
	if s == nil || s.consumed {
		return
	}
	hwnd := win.HWND(s.hwnd)
	win.ShowWindow(hwnd, win.SW_SHOW)
	win.UpdateWindow(hwnd)
}

// RunUntilClosed pumps messages on the calling thread until the window is
// destroyed. The thread must be the one that called Create.
func (s *Session) RunUntilClosed() {
	if s == nil {
		return
	}
	if s.consumed {
		s.logger.Warn("[WARN-WINDOW] session already closed, ignoring RunUntilClosed")
		return
	}
	s.consumed = true
	defer s.release()

	s.logger.Debug("[DEBUG-WINDOW] message loop started")
	pump(s.logger)
	s.logger.Debug("[DEBUG-WINDOW] message loop ended")
}

func pump(logger *slog.Logger) {
	var msg win.MSG
	for {
		switch win.GetMessage(&msg, 0, 0, 0) {
		case 0:
			return
		case -1:
			logger.Warn("[WARN-WINDOW] GetMessageW failed, leaving message loop", "error", lastError("GetMessageW"))
			return
		default:
			win.TranslateMessage(&msg)
			win.DispatchMessage(&msg)
		}
	}
}

// release runs after the loop. Normally the window is already gone; if the
// loop ended for another reason the window is destroyed here and the quit
// message that causes is drained so the next session's loop is unaffected.
func (s *Session) release() {
	hwnd := win.HWND(s.hwnd)
	if isWindow(hwnd) {
		s.logger.Debug("[DEBUG-WINDOW] destroying window left open after message loop")
		win.DestroyWindow(hwnd)
		drainQuit()
	}
	releaseState(s.cookie)
	s.hwnd = 0
	s.button = 0
}

func drainQuit() {
	var msg win.MSG
	for win.PeekMessage(&msg, 0, win.WM_QUIT, win.WM_QUIT, win.PM_REMOVE) {
	}
}

func isWindow(hwnd win.HWND) bool {
	if hwnd == 0 {
		return false
	}
	ret, _, _ := procIsWindow.Call(uintptr(hwnd))
	return ret != 0
}

func lastError(call string) error {
	code := win.GetLastError()
	if code == 0 {
		return fmt.Errorf("%s failed", call)
	}
	return fmt.Errorf("%s failed: %w", call, windows.Errno(code))
}
