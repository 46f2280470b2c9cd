package templates

import "fmt"

// RenderAdminPasswordReset generates the HTML for the admin password reset email
func RenderAdminPasswordReset(resetLink string) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Password Reset - Sunridge Rentals Admin</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4f4f5; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #d97706 0%%, #b45309 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #374151; }
    .content h2 { color: #111827; margin-top: 0; }
    .cta-button { display: inline-block; background: linear-gradient(135deg, #d97706 0%%, #b45309 100%%); color: #fff; padding: 14px 28px; border-radius: 8px; text-decoration: none; font-weight: 700; margin-top: 20px; }
    .footer { padding: 30px; text-align: center; color: #9ca3af; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Password Reset</h1>
    </div>
    <div class="content">
      <h2>Reset your admin password</h2>
      <p>We received a request to reset the password for your <strong>Sunridge Rentals</strong> admin account.</p>
      <p>Click the button below to choose a new password. This link expires in one hour and can only be used once.</p>
      <div style="text-align: center;">
        <a href="%s" class="cta-button">Reset Password</a>
      </div>
      <p style="margin-top: 30px; font-size: 14px; color: #6b7280;">If you did not request a password reset, you can safely ignore this email. Your password will not change.</p>
    </div>
    <div class="footer">
      <p>Sunridge Rentals &middot; This is an automated message, please do not reply.</p>
    </div>
  </div>
</body>
</html>`, resetLink)
}
